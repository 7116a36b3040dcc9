package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/torrentvault/pkg/configs"
)

func TestSwaggerRouteOnlyInDebug(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, debug := range []bool{false, true} {
		r := gin.New()
		RegisterSwaggerRoute(r, configs.ServerConfig{Host: "127.0.0.1", Port: 8080, Debug: debug})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

		if !debug {
			if w.Code != http.StatusNotFound {
				t.Errorf("debug off: status = %d, want 404", w.Code)
			}

			continue
		}

		if w.Code != http.StatusOK {
			t.Fatalf("debug on: status = %d", w.Code)
		}

		body := w.Body.String()
		for _, want := range []string{`"/api/v1/upload"`, `"127.0.0.1:8080"`, `"types.Result"`} {
			if !strings.Contains(body, want) {
				t.Errorf("doc.json missing %s", want)
			}
		}
	}
}
