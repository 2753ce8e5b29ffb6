package http

import (
	"net/http"
	"time"

	"github.com/wpdevquiz/proctor/internal/proctor/store"
	"github.com/wpdevquiz/proctor/pkg/httpx"
	"github.com/wpdevquiz/proctor/pkg/proctorsdk"
)

// HealthHandler reports liveness plus uptime and version. It pings the
// store so a wedged database shows up as a 503 rather than a silent "ok".
func HealthHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, proctorsdk.HealthResponse{
				Status: "unavailable",
			})
			return
		}

		httpx.WriteJSON(w, http.StatusOK, proctorsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
