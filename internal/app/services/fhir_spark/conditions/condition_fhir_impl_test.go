package conditions

import (
	"chart-service/internal/app/services/fhir_spark"
	"chart-service/internal/pkg/exceptions"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFindConditionByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Condition/cond-1":
			io.WriteString(w, `{
				"resourceType": "Condition",
				"id": "cond-1",
				"meta": {"lastUpdated": "2024-05-07T10:00:00.000+00:00"},
				"clinicalStatus": {"coding": [{"code": "active"}]},
				"code": {"text": "Malaria"},
				"subject": {"reference": "Patient/pat-1"},
				"onsetDateTime": "2024-04-02"
			}`)
		case "/Condition/down":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"resourceType":"OperationOutcome","issue":[{"severity":"error","code":"not-found","diagnostics":"Resource not found"}]}`)
		}
	}))
	defer server.Close()

	client := NewConditionFhirClient(fhir_spark.NewRequester(server.URL+"/", 5*time.Second, 10), zap.NewNop())

	t.Run("Found", func(t *testing.T) {
		condition, err := client.FindConditionByID(context.Background(), "cond-1")

		require.NoError(t, err)
		assert.Equal(t, "cond-1", condition.ID)
		assert.Equal(t, "Malaria", condition.Code.Text)
		require.NotNil(t, condition.Meta.LastUpdated)
		assert.Equal(t, 7, condition.Meta.LastUpdated.Day())
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := client.FindConditionByID(context.Background(), "missing")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, http.StatusNotFound, customErr.StatusCode)
		assert.Contains(t, customErr.DevMessage, "Resource not found")
	})

	t.Run("Upstream Failure", func(t *testing.T) {
		_, err := client.FindConditionByID(context.Background(), "down")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, http.StatusBadGateway, customErr.StatusCode)
	})
}
