package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"

	"github.com/eunsoo8606/texaspapa/crypto"
	"github.com/eunsoo8606/texaspapa/handlers"
	"github.com/eunsoo8606/texaspapa/models"
	"github.com/eunsoo8606/texaspapa/store"
)

type fakeLeads struct {
	leads  map[int]*models.Consultation
	nextID int
}

func newFakeLeads() *fakeLeads {
	return &fakeLeads{leads: map[int]*models.Consultation{}, nextID: 1}
}

func (f *fakeLeads) CreateConsultation(_ context.Context, lead *models.Consultation) (int, error) {
	copied := *lead
	copied.ID = f.nextID
	copied.Status = "pending"
	copied.CreatedAt = time.Now()
	f.leads[copied.ID] = &copied
	f.nextID++
	return copied.ID, nil
}

func (f *fakeLeads) ListConsultations(_ context.Context) ([]models.Consultation, error) {
	out := []models.Consultation{}
	for id := 1; id < f.nextID; id++ {
		if lead, ok := f.leads[id]; ok {
			out = append(out, *lead)
		}
	}
	return out, nil
}

func (f *fakeLeads) UpdateConsultationStatus(_ context.Context, id int, status string) error {
	lead, ok := f.leads[id]
	if !ok {
		return store.ErrNotFound
	}
	lead.Status = status
	return nil
}

type leadFixture struct {
	leads    *fakeLeads
	codec    *crypto.Codec
	notifier *recordingNotifier
	router   *gin.Engine
}

func newLeadFixture(t *testing.T) *leadFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &leadFixture{
		leads:    newFakeLeads(),
		codec:    testCodec(t),
		notifier: newRecordingNotifier(),
	}

	h := handlers.NewConsultationHandler(f.leads, f.codec, f.notifier)

	f.router = gin.New()
	f.router.POST("/api/consultation", h.Create)
	admin := f.router.Group("/api/admin", stubAuth(7, "관리자", testCompanyID))
	admin.GET("/consultations", h.List)
	admin.PUT("/consultations/:id/status", h.UpdateStatus)
	return f
}

func (f *leadFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, f.router, method, path, body)
}

func TestCreateConsultationEncryptsPII(t *testing.T) {
	c := qt.New(t)
	f := newLeadFixture(t)

	w := f.do(t, http.MethodPost, "/api/consultation", map[string]string{
		"name":    "김철수",
		"phone":   "010-9876-5432",
		"email":   "kim@example.com",
		"region":  "서울",
		"budget":  "1억 이상",
		"message": "창업 상담을 원합니다.",
	})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	stored := f.leads.leads[1]
	c.Assert(stored, qt.IsNotNil)
	c.Assert(stored.Name, qt.Not(qt.Equals), "김철수")
	c.Assert(stored.Phone, qt.Not(qt.Equals), "010-9876-5432")
	c.Assert(f.codec.Decrypt(stored.Name), qt.Equals, "김철수")
	c.Assert(f.codec.Decrypt(stored.Phone), qt.Equals, "01098765432")
	c.Assert(f.codec.Decrypt(stored.Email), qt.Equals, "kim@example.com")
	// Business fields are stored as given.
	c.Assert(stored.Region, qt.Equals, "서울")
	c.Assert(stored.Budget, qt.Equals, "1억 이상")

	select {
	case notice := <-f.notifier.leads:
		c.Assert(notice.Name, qt.Equals, "김철수")
		c.Assert(notice.Phone, qt.Equals, "010-9876-5432")
	case <-time.After(time.Second):
		c.Fatal("expected a new-lead notification")
	}
}

func TestCreateConsultationRejectsBadPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
	}{
		{name: "letters", phone: "010-abcd-5678"},
		{name: "spaces", phone: "010 1234 5678"},
		{name: "empty", phone: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			f := newLeadFixture(t)

			w := f.do(t, http.MethodPost, "/api/consultation", map[string]string{
				"name":  "김철수",
				"phone": tt.phone,
			})
			c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
			c.Assert(f.leads.leads, qt.HasLen, 0)
		})
	}
}

func TestListConsultationsDecryptsForConsole(t *testing.T) {
	c := qt.New(t)
	f := newLeadFixture(t)

	w := f.do(t, http.MethodPost, "/api/consultation", map[string]string{
		"name":  "김철수",
		"phone": "01098765432",
		"email": "kim@example.com",
	})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	w = f.do(t, http.MethodGet, "/api/admin/consultations", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	var leads []models.Consultation
	c.Assert(json.Unmarshal(w.Body.Bytes(), &leads), qt.IsNil)
	c.Assert(leads, qt.HasLen, 1)
	c.Assert(leads[0].Name, qt.Equals, "김철수")
	c.Assert(leads[0].Phone, qt.Equals, "010-9876-5432")
	c.Assert(leads[0].Email, qt.Equals, "kim@example.com")
}

func TestUpdateConsultationStatus(t *testing.T) {
	c := qt.New(t)
	f := newLeadFixture(t)

	w := f.do(t, http.MethodPost, "/api/consultation", map[string]string{
		"name":  "김철수",
		"phone": "01098765432",
	})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	w = f.do(t, http.MethodPut, "/api/admin/consultations/1/status",
		map[string]string{"status": "contacted"})
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(f.leads.leads[1].Status, qt.Equals, "contacted")

	w = f.do(t, http.MethodPut, "/api/admin/consultations/99/status",
		map[string]string{"status": "contacted"})
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)
}
