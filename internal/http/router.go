package http

import (
	"net/http"
	"strings"
)

// RouterConfig bundles the handlers and middleware wired into the router.
type RouterConfig struct {
	Months     *MonthHandler
	Editor     *EditorHandler
	Employees  *EmployeeHandler
	Absences   *AbsenceHandler
	Overrides  *OverrideHandler
	Middleware []func(http.Handler) http.Handler
}

// NewRouter assembles the HTTP surface of the calendar service.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Months != nil {
		mux.HandleFunc("/month/", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			rest := strings.TrimPrefix(r.URL.Path, "/month/")
			parts := strings.Split(strings.Trim(rest, "/"), "/")
			switch {
			case len(parts) == 2:
				cfg.Months.Get(w, r, parts[0], parts[1])
			case len(parts) == 3 && parts[2] == "ics":
				cfg.Months.GetICS(w, r, parts[0], parts[1])
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Editor != nil {
		editorRoutes := map[string]http.HandlerFunc{
			"/editor/select":     cfg.Editor.SelectCell,
			"/editor/distribute": cfg.Editor.StartDistribute,
			"/editor/move":       cfg.Editor.StartMove,
			"/editor/duration":   cfg.Editor.EditDuration,
			"/editor/delete":     cfg.Editor.Delete,
			"/editor/series":     cfg.Editor.CreateSeries,
			"/editor/cancel":     cfg.Editor.Cancel,
		}
		for path, handler := range editorRoutes {
			handler := handler
			mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				handler(w, r)
			})
		}
	}

	if cfg.Employees != nil {
		mux.HandleFunc("/employees", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Employees.List(w, r)
			case http.MethodPost:
				cfg.Employees.Create(w, r)
			case http.MethodPut:
				cfg.Employees.Save(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodPut)
			}
		})
	}

	if cfg.Absences != nil {
		mux.HandleFunc("/absences", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Absences.Upsert(w, r)
		})
		mux.HandleFunc("/absences/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/absences/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Absences.Delete(w, r, id)
		})
	}

	if cfg.Overrides != nil {
		mux.HandleFunc("/status-overrides", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Overrides.Upsert(w, r)
		})
		mux.HandleFunc("/status-overrides/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/status-overrides/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Overrides.Delete(w, r, id)
		})
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		handler = cfg.Middleware[i](handler)
	}
	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
