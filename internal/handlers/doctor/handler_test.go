package doctor_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mediconnect/infras/otel/mocks"
	"mediconnect/internal/domains/slot/model/dto"
	slotMocks "mediconnect/internal/domains/slot/mocks"
	"mediconnect/internal/handlers/doctor"
	"mediconnect/shared/calendar"
)

func newRouter(t *testing.T) (chi.Router, *slotMocks.MockSlot) {
	t.Helper()

	slots := slotMocks.NewMockSlot(gomock.NewController(t))
	h := doctor.New(nil, slots, mocks.NewOtel())

	router := chi.NewRouter()
	h.Router(router)

	return router, slots
}

func get(router chi.Router, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestHandler_GetSlots(t *testing.T) {
	future := calendar.NewDate(2099, 1, 5)

	tests := []struct {
		name     string
		target   string
		setup    func(slots *slotMocks.MockSlot)
		wantCode int
	}{
		{
			name:   "one date",
			target: "/doctors/doc-1/slots?date=2099-01-05",
			setup: func(slots *slotMocks.MockSlot) {
				slots.EXPECT().Availability(gomock.Any(), "doc-1", future).
					Return(dto.NewAvailability(future, false, []calendar.TimeOfDay{calendar.NewTimeOfDay(9, 0)}), nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "lookahead without date",
			target: "/doctors/doc-1/slots",
			setup: func(slots *slotMocks.MockSlot) {
				slots.EXPECT().Lookahead(gomock.Any(), "doc-1").Return(dto.LookaheadResponse{DoctorID: "doc-1"}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "past date is rejected before generating",
			target:   "/doctors/doc-1/slots?date=2020-01-06",
			setup:    func(_ *slotMocks.MockSlot) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed date",
			target:   "/doctors/doc-1/slots?date=06-01-2020",
			setup:    func(_ *slotMocks.MockSlot) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, slots := newRouter(t)
			tt.setup(slots)

			rec := get(router, tt.target)

			assert.Equal(t, tt.wantCode, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		})
	}
}
