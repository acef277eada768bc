package http

import (
	"encoding/json"
	stdhttp "net/http"
	"testing"

	domainCredit "cupo-backend/internal/domain/credit"
	creditUC "cupo-backend/internal/usecase/credit"
	"cupo-backend/pkg/id"
)

func TestGetCreditProfile_Success(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProfile(t, func(p *domainCredit.Profile) {
		p.Score = 85
		p.CurrentLimitCOP = domainCredit.LimitTier3
	})

	c, rec := s.newJSONContext(stdhttp.MethodGet, "/admin/credit/profiles/"+p.UserID, nil, id.NewID32())
	c.SetParamNames("user_id")
	c.SetParamValues(p.UserID)

	if err := s.creditH.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var dto creditUC.ProfileDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.UserID != p.UserID || dto.Score != 85 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if dto.CurrentLimitCOP != float64(domainCredit.LimitTier3) {
		t.Fatalf("limit = %v, want %v", dto.CurrentLimitCOP, domainCredit.LimitTier3)
	}
}

func TestGetCreditProfile_NotFound(t *testing.T) {
	s := newTestServer(t)

	c, rec := s.newJSONContext(stdhttp.MethodGet, "/admin/credit/profiles/x", nil, id.NewID32())
	c.SetParamNames("user_id")
	c.SetParamValues(id.NewID32())

	if err := s.creditH.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateCreditProfile_Success(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProfile(t, nil)

	c, rec := s.newJSONContext(stdhttp.MethodPatch, "/admin/credit/profiles/"+p.UserID, mustJSON(map[string]any{
		"current_limit_cop": 200000,
		"risk_tier":         "MEDIUM",
	}), id.NewID32())
	c.SetParamNames("user_id")
	c.SetParamValues(p.UserID)

	if err := s.creditH.Update(c); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var dto creditUC.ProfileDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &dto)
	if dto.CurrentLimitCOP != 200000 || dto.RiskTier != "MEDIUM" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestUpdateCreditProfile_ValidationError(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProfile(t, nil)

	c, rec := s.newJSONContext(stdhttp.MethodPatch, "/admin/credit/profiles/"+p.UserID, mustJSON(map[string]any{
		"risk_tier":         "EXTREME",
		"current_limit_cop": -5,
	}), id.NewID32())
	c.SetParamNames("user_id")
	c.SetParamValues(p.UserID)

	if err := s.creditH.Update(c); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "RiskTier", "must be one of: LOW MEDIUM HIGH") {
		t.Fatalf("missing oneof detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "CurrentLimitCOP", "greater than or equal to 0") {
		t.Fatalf("missing gte detail: %+v", er.Details)
	}
}

func TestUpdateCreditProfile_LimitInvariant(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProfile(t, func(p *domainCredit.Profile) {
		p.MaxLimitCOP = domainCredit.LimitTier2
	})

	c, rec := s.newJSONContext(stdhttp.MethodPatch, "/admin/credit/profiles/"+p.UserID, mustJSON(map[string]any{
		"current_limit_cop": 500000, // above the 200,000 cap
	}), id.NewID32())
	c.SetParamNames("user_id")
	c.SetParamValues(p.UserID)

	if err := s.creditH.Update(c); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body=%s", rec.Code, rec.Body.String())
	}
}

func TestUpdateCreditProfile_MissingActor(t *testing.T) {
	s := newTestServer(t)

	c, rec := s.newJSONContext(stdhttp.MethodPatch, "/admin/credit/profiles/x", mustJSON(map[string]any{
		"risk_tier": "LOW",
	}), "")
	c.SetParamNames("user_id")
	c.SetParamValues("x")

	if err := s.creditH.Update(c); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
