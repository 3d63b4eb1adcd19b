package sqlite

// Store bundles the SQLite-backed repositories behind a single handle.
// It satisfies persistence.Store.
type Store struct {
	pool *ConnectionPool

	*EmployeeRepository
	*AppointmentRepository
	*RecurrenceRepository
	*AbsenceRepository
	*StatusOverrideRepository
}

// Open opens (or creates) the database at the given DSN. Call Migrate
// before using any repository.
func Open(dsn string) (*Store, error) {
	pool, err := NewConnectionPool(dsn)
	if err != nil {
		return nil, err
	}

	helper := NewQueryHelper(pool)
	mapper := NewErrorMapper()

	return &Store{
		pool: pool,

		EmployeeRepository:       NewEmployeeRepository(pool, helper, mapper),
		AppointmentRepository:    NewAppointmentRepository(pool, helper, mapper),
		RecurrenceRepository:     NewRecurrenceRepository(pool, helper, mapper),
		AbsenceRepository:        NewAbsenceRepository(pool, helper, mapper),
		StatusOverrideRepository: NewStatusOverrideRepository(pool, helper, mapper),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.pool.Close()
}
