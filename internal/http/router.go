package http

import (
	"context"
	"net/http"
	"strings"
)

// Pinger reports backing store health for the /healthz endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Equipment   *EquipmentHandler
	Checklist   *ChecklistHandler
	Log         *LogHandler
	Maintenance *MaintenanceHandler
	Issues      *IssueHandler
	Staff       *StaffHandler
	Reports     *ReportHandler
	Metrics     http.Handler
	Health      Pinger
	Middleware  []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Equipment != nil {
		mux.HandleFunc("/equipment", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Equipment.List(w, r)
			case http.MethodPost:
				cfg.Equipment.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/equipment/import", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Equipment.Import(w, r)
		})
		mux.HandleFunc("/equipment/", func(w http.ResponseWriter, r *http.Request) {
			id, action := splitResourcePath(r.URL.Path, "/equipment/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			switch action {
			case "":
				switch r.Method {
				case http.MethodGet:
					cfg.Equipment.Get(w, r)
				case http.MethodPut:
					cfg.Equipment.Update(w, r)
				case http.MethodDelete:
					cfg.Equipment.Delete(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
				}
			case "check":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Equipment.CompleteCheck(w, r)
			case "photos":
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				cfg.Equipment.ListPhotos(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Checklist != nil {
		mux.HandleFunc("/checklist", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Checklist.List(w, r)
			case http.MethodPost:
				cfg.Checklist.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/checklist/complete-all", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Checklist.CompleteAll(w, r)
		})
		mux.HandleFunc("/checklist/", func(w http.ResponseWriter, r *http.Request) {
			id, action := splitResourcePath(r.URL.Path, "/checklist/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			switch action {
			case "toggle":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Checklist.Toggle(w, r)
			case "notes":
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				cfg.Checklist.UpdateNotes(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Log != nil {
		mux.HandleFunc("/log", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Log.List(w, r)
			case http.MethodPost:
				cfg.Log.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/log/", func(w http.ResponseWriter, r *http.Request) {
			id, action := splitResourcePath(r.URL.Path, "/log/")
			if id == "" || action != "status" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodPut {
				methodNotAllowed(w, http.MethodPut)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			cfg.Log.UpdateStatus(w, r)
		})
	}

	if cfg.Maintenance != nil {
		mux.HandleFunc("/maintenance", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Maintenance.List(w, r)
			case http.MethodPost:
				cfg.Maintenance.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/maintenance/complete", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Maintenance.Complete(w, r)
		})
		mux.HandleFunc("/maintenance/overdue", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Maintenance.Overdue(w, r)
		})
		mux.HandleFunc("/maintenance/", func(w http.ResponseWriter, r *http.Request) {
			id, action := splitResourcePath(r.URL.Path, "/maintenance/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			switch action {
			case "":
				if r.Method != http.MethodDelete {
					methodNotAllowed(w, http.MethodDelete)
					return
				}
				cfg.Maintenance.Delete(w, r)
			case "status":
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				cfg.Maintenance.MarkStatus(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Issues != nil {
		mux.HandleFunc("/issues", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Issues.Report(w, r)
		})
	}

	if cfg.Staff != nil {
		mux.HandleFunc("/staff", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Staff.List(w, r)
			case http.MethodPost:
				cfg.Staff.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/staff/", func(w http.ResponseWriter, r *http.Request) {
			id, action := splitResourcePath(r.URL.Path, "/staff/")
			if id == "" || action != "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), id))
			switch r.Method {
			case http.MethodPut:
				cfg.Staff.Update(w, r)
			case http.MethodDelete:
				cfg.Staff.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Reports != nil {
		mux.HandleFunc("/reports/", func(w http.ResponseWriter, r *http.Request) {
			reportType, action := splitResourcePath(r.URL.Path, "/reports/")
			if reportType == "" || action != "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			r = r.WithContext(ContextWithResourceID(r.Context(), reportType))
			cfg.Reports.Generate(w, r)
		})
	}

	if cfg.Metrics != nil {
		mux.Handle("/metrics", cfg.Metrics)
	}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		if cfg.Health != nil {
			if err := cfg.Health.Ping(r.Context()); err != nil {
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		handler = cfg.Middleware[i](handler)
	}
	return handler
}

// splitResourcePath separates "/prefix/{id}" and "/prefix/{id}/{action}".
func splitResourcePath(path, prefix string) (id, action string) {
	rest := strings.TrimPrefix(path, prefix)
	if rest == path {
		return "", ""
	}
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)
	id = parts[0]
	if len(parts) == 2 {
		action = parts[1]
	}
	return id, action
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
