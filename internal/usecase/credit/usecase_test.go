package credit

import (
	"context"
	"testing"

	domainCredit "cupo-backend/internal/domain/credit"
	"cupo-backend/internal/adapter/repository/mysql"
	"cupo-backend/internal/testutil/testdb"
	"cupo-backend/pkg/apperr"
	"cupo-backend/pkg/id"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestUsecase(t *testing.T) (*Usecase, *mysql.CreditProfileRepository, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t)
	profiles := mysql.NewCreditProfileRepository(db)
	return NewUsecase(profiles, mysql.NewGormUoW(db)), profiles, db
}

func seedProfile(t *testing.T, profiles *mysql.CreditProfileRepository, mut func(*domainCredit.Profile)) *domainCredit.Profile {
	t.Helper()
	p := &domainCredit.Profile{
		UserID:          id.NewID32(),
		KYCStatus:       domainCredit.KYCApproved,
		RiskTier:        domainCredit.TierLow,
		Score:           50,
		CurrentLimitCOP: domainCredit.LimitTier1,
		MaxLimitCOP:     domainCredit.LimitTier4,
	}
	if mut != nil {
		mut(p)
	}
	require.NoError(t, profiles.Create(context.Background(), p))
	return p
}

func ptr[T any](v T) *T { return &v }

func TestGet(t *testing.T) {
	uc, profiles, _ := newTestUsecase(t)
	p := seedProfile(t, profiles, nil)

	dto, err := uc.Get(context.Background(), p.UserID)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, dto.UserID)
	assert.Equal(t, "APPROVED", dto.KYCStatus)
	assert.Equal(t, "LOW", dto.RiskTier)
	assert.Equal(t, 50, dto.Score)
	assert.Equal(t, float64(domainCredit.LimitTier1), dto.CurrentLimitCOP)
}

func TestGet_NotFound(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.Get(context.Background(), id.NewID32())
	assert.ErrorIs(t, err, domainCredit.ErrNotFound)
}

func TestAdminUpdate_PartialFields(t *testing.T) {
	uc, profiles, _ := newTestUsecase(t)
	p := seedProfile(t, profiles, nil)

	dto, err := uc.AdminUpdate(context.Background(), AdminUpdateInput{
		UserID:          p.UserID,
		ActorID:         id.NewID32(),
		CurrentLimitCOP: ptr(float64(domainCredit.LimitTier2)),
		RiskTier:        ptr("MEDIUM"),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(domainCredit.LimitTier2), dto.CurrentLimitCOP)
	assert.Equal(t, "MEDIUM", dto.RiskTier)
	// untouched fields keep their value
	assert.Equal(t, 50, dto.Score)
	assert.Equal(t, float64(domainCredit.LimitTier4), dto.MaxLimitCOP)
	assert.False(t, dto.IsSuspended)
}

func TestAdminUpdate_CurrentCannotExceedMax(t *testing.T) {
	uc, profiles, db := newTestUsecase(t)
	p := seedProfile(t, profiles, func(p *domainCredit.Profile) {
		p.MaxLimitCOP = domainCredit.LimitTier2
	})

	_, err := uc.AdminUpdate(context.Background(), AdminUpdateInput{
		UserID:          p.UserID,
		ActorID:         id.NewID32(),
		CurrentLimitCOP: ptr(float64(domainCredit.LimitTier3)),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// nothing persisted, nothing audited
	stored, err := profiles.GetByUserID(context.Background(), p.UserID)
	require.NoError(t, err)
	assert.Equal(t, float64(domainCredit.LimitTier1), stored.CurrentLimitCOP)
	var n int64
	require.NoError(t, db.Table("audit_logs").Count(&n).Error)
	assert.Zero(t, n)
}

func TestAdminUpdate_RaisingMaxUnlocksCurrent(t *testing.T) {
	uc, profiles, _ := newTestUsecase(t)
	p := seedProfile(t, profiles, func(p *domainCredit.Profile) {
		p.MaxLimitCOP = domainCredit.LimitTier1
	})

	dto, err := uc.AdminUpdate(context.Background(), AdminUpdateInput{
		UserID:          p.UserID,
		ActorID:         id.NewID32(),
		CurrentLimitCOP: ptr(float64(domainCredit.LimitTier3)),
		MaxLimitCOP:     ptr(float64(domainCredit.LimitTier4)),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(domainCredit.LimitTier3), dto.CurrentLimitCOP)
	assert.Equal(t, float64(domainCredit.LimitTier4), dto.MaxLimitCOP)
}

func TestAdminUpdate_SuspendAndReinstate(t *testing.T) {
	uc, profiles, db := newTestUsecase(t)
	p := seedProfile(t, profiles, nil)
	admin := id.NewID32()

	dto, err := uc.AdminUpdate(context.Background(), AdminUpdateInput{
		UserID:           p.UserID,
		ActorID:          admin,
		IsSuspended:      ptr(true),
		SuspensionReason: ptr("chargeback dispute open"),
	})
	require.NoError(t, err)
	assert.True(t, dto.IsSuspended)
	assert.Equal(t, "chargeback dispute open", dto.SuspensionReason)

	dto, err = uc.AdminUpdate(context.Background(), AdminUpdateInput{
		UserID:      p.UserID,
		ActorID:     admin,
		IsSuspended: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, dto.IsSuspended)
	assert.Empty(t, dto.SuspensionReason, "reinstating clears the reason")

	var n int64
	require.NoError(t, db.Table("audit_logs").Where("action = ?", "CREDIT_PROFILE_UPDATED").Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestAdminUpdate_InvalidTier(t *testing.T) {
	uc, profiles, _ := newTestUsecase(t)
	p := seedProfile(t, profiles, nil)

	_, err := uc.AdminUpdate(context.Background(), AdminUpdateInput{
		UserID:   p.UserID,
		ActorID:  id.NewID32(),
		RiskTier: ptr("EXTREME"),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAdminUpdate_NotFound(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.AdminUpdate(context.Background(), AdminUpdateInput{
		UserID:  id.NewID32(),
		ActorID: id.NewID32(),
	})
	assert.ErrorIs(t, err, domainCredit.ErrNotFound)
}

func TestEligibilityFor(t *testing.T) {
	_, profiles, _ := newTestUsecase(t)
	p := seedProfile(t, profiles, func(p *domainCredit.Profile) {
		p.KYCStatus = domainCredit.KYCPending
		p.RiskTier = domainCredit.TierMedium
		p.IsSuspended = true
		p.SuspensionReason = "fraud hold"
	})
	adapter := NewEligibilityAdapter(profiles)

	snap, err := adapter.EligibilityFor(context.Background(), p.UserID)
	require.NoError(t, err)
	assert.False(t, snap.KYCApproved)
	assert.Equal(t, "MEDIUM", snap.RiskTier)
	assert.True(t, snap.Suspended)
	assert.Equal(t, "fraud hold", snap.SuspensionReason)
	assert.Equal(t, float64(domainCredit.LimitTier1), snap.CurrentLimitCOP)

	_, err = adapter.EligibilityFor(context.Background(), id.NewID32())
	assert.ErrorIs(t, err, domainCredit.ErrNotFound)
}
