package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goa "goa.design/goa/v3/pkg"
	"goa.design/goa/v3/security"
	"gorm.io/gorm"

	"seatrade/internal/config"
	"seatrade/internal/database"
	"seatrade/internal/domain"
	"seatrade/internal/util"
	"seatrade/internal/validation"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func errName(err error) string {
	var se *goa.ServiceError
	if errors.As(err, &se) {
		return se.Name
	}
	return ""
}

type chanNotifier chan *domain.Inquiry

func (c chanNotifier) NotifyNewInquiry(inq *domain.Inquiry) error {
	c <- inq
	return nil
}

func strptr(s string) *string { return &s }

func validInquiry() *validation.InquiryInput {
	return &validation.InquiryInput{
		FirstName: " Jane ",
		LastName:  "Doe",
		Email:     "Jane@Example.COM",
		Topic:     strptr("export"),
		Message:   "Need 2t of shrimp",
	}
}

func TestInquiryService_CreateForcesNewStatus(t *testing.T) {
	notified := make(chanNotifier, 1)
	svc := NewInquiryService(newTestDB(t), notified)
	ctx := context.Background()

	inq, err := svc.Create(ctx, validInquiry())
	require.NoError(t, err)
	assert.NotZero(t, inq.ID)
	assert.Equal(t, domain.StatusNew, inq.Status)
	assert.Equal(t, "Jane", inq.FirstName)
	assert.Equal(t, "jane@example.com", inq.Email)
	require.NotNil(t, inq.Topic)
	assert.Equal(t, domain.TopicExport, *inq.Topic)
	assert.Nil(t, inq.Phone)

	select {
	case got := <-notified:
		assert.Equal(t, inq.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("notifier was not called")
	}
}

func TestInquiryService_CreateRejectsInvalid(t *testing.T) {
	svc := NewInquiryService(newTestDB(t), nil)
	in := validInquiry()
	in.Email = "not-an-email"
	in.Message = "  "

	_, err := svc.Create(context.Background(), in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Fields.Field("email"))
	assert.NotEmpty(t, verr.Fields.Field("message"))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInquiryService_Lifecycle(t *testing.T) {
	svc := NewInquiryService(newTestDB(t), nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, validInquiry())
	require.NoError(t, err)
	second, err := svc.Create(ctx, validInquiry())
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	updated, err := svc.UpdateStatus(ctx, first.ID, &UpdateInquiryPayload{Status: "resolved"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, updated.Status)
	assert.NotNil(t, updated.UpdatedAt)

	// Any status may follow any other.
	updated, err = svc.UpdateStatus(ctx, first.ID, &UpdateInquiryPayload{Status: "replied"})
	require.NoError(t, err)
	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReplied, got.Status)

	require.NoError(t, svc.Delete(ctx, first.ID))
	_, err = svc.Get(ctx, first.ID)
	assert.Equal(t, ErrNameNotFound, errName(err))
	assert.Equal(t, ErrNameNotFound, errName(svc.Delete(ctx, first.ID)))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestInquiryService_UpdateStatusRejectsUnknown(t *testing.T) {
	svc := NewInquiryService(newTestDB(t), nil)
	ctx := context.Background()
	inq, err := svc.Create(ctx, validInquiry())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, inq.ID, &UpdateInquiryPayload{Status: "archived"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be one of new, replied, resolved", verr.Fields.Field("status"))

	_, err = svc.UpdateStatus(ctx, 999, &UpdateInquiryPayload{Status: "replied"})
	assert.Equal(t, ErrNameNotFound, errName(err))
}

func TestTestimonialService_SubmitAndModerate(t *testing.T) {
	svc := NewTestimonialService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Submit(ctx, &validation.TestimonialInput{Name: "Al", Content: "short", Rating: 6})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Fields.Field("content"))
	assert.NotEmpty(t, verr.Fields.Field("rating"))

	tm, err := svc.Submit(ctx, &validation.TestimonialInput{
		Name: "Ana Lima", Company: strptr("Lima Foods"), Content: "Great quality tuna, fast shipping.", Rating: 5,
	})
	require.NoError(t, err)
	assert.False(t, tm.Approved)

	approved, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	assert.Empty(t, approved)

	yes := true
	tm, err = svc.Update(ctx, tm.ID, &UpdateTestimonialPayload{Approved: &yes})
	require.NoError(t, err)
	assert.True(t, tm.Approved)

	approved, err = svc.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Lima Foods", *approved[0].Company)

	bad := 0
	_, err = svc.Update(ctx, tm.ID, &UpdateTestimonialPayload{Rating: &bad})
	require.ErrorAs(t, err, &verr)

	require.NoError(t, svc.Delete(ctx, tm.ID))
	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, ErrNameNotFound, errName(svc.Delete(ctx, tm.ID)))
}

func TestProductService_SlugsAreUnique(t *testing.T) {
	svc := NewProductService(newTestDB(t))
	ctx := context.Background()

	a, err := svc.Create(ctx, &validation.ProductInput{Name: "Black Tiger Shrimp", Category: "shrimp"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, &validation.ProductInput{Name: "Black Tiger Shrimp", Category: "shrimp", Featured: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &validation.ProductInput{Name: "Yellowfin Tuna", Category: "tuna"})
	require.NoError(t, err)

	assert.Equal(t, "black-tiger-shrimp", a.Slug)
	assert.Equal(t, "black-tiger-shrimp-2", b.Slug)

	shrimp, err := svc.List(ctx, "shrimp")
	require.NoError(t, err)
	require.Len(t, shrimp, 2)
	assert.Equal(t, b.ID, shrimp[0].ID, "featured first")

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	updated, err := svc.Update(ctx, a.ID, &validation.ProductInput{Name: "Tiger Prawn", Origin: "Vietnam"})
	require.NoError(t, err)
	assert.Equal(t, "black-tiger-shrimp", updated.Slug)
	assert.Equal(t, "Vietnam", updated.Origin)

	_, err = svc.Create(ctx, &validation.ProductInput{Name: ""})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	require.NoError(t, svc.Delete(ctx, a.ID))
	_, err = svc.Get(ctx, a.ID)
	assert.Equal(t, ErrNameNotFound, errName(err))
}

func TestBlogService_PublishedVisibility(t *testing.T) {
	svc := NewBlogService(newTestDB(t))
	ctx := context.Background()

	draft, err := svc.Create(ctx, &validation.BlogPostInput{Title: "Cold Chain Basics", Content: "..."})
	require.NoError(t, err)
	assert.Equal(t, "cold-chain-basics", draft.Slug)
	assert.Nil(t, draft.PublishedAt)

	_, err = svc.GetPublished(ctx, draft.Slug)
	assert.Equal(t, ErrNameNotFound, errName(err))

	live, err := svc.Update(ctx, draft.ID, &validation.BlogPostInput{Title: "Cold Chain Basics", Content: "Body", Published: true})
	require.NoError(t, err)
	require.NotNil(t, live.PublishedAt)

	got, err := svc.GetPublished(ctx, "cold-chain-basics")
	require.NoError(t, err)
	assert.Equal(t, "Body", got.Content)

	other, err := svc.Create(ctx, &validation.BlogPostInput{Title: "Other", Slug: "Cold Chain Basics", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, "cold-chain-basics-2", other.Slug)

	published, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, published, 1)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Delete(ctx, other.ID))
	assert.Equal(t, ErrNameNotFound, errName(svc.Delete(ctx, other.ID)))
}

func newAuth(t *testing.T) (*AuthService, *gorm.DB) {
	db := newTestDB(t)
	issuer := util.NewTokenIssuer(config.AuthConfig{SecretKey: "test-secret", TokenExpiryMinutes: 30})
	return NewAuthService(db, issuer), db
}

func TestAuthService_LoginMeLogout(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "admin", "Admin@Seatrade.test", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, created)
	created, err = svc.EnsureAdmin(ctx, "admin", "admin@seatrade.test", "s3cret-pass")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.Login(ctx, &LoginPayload{Username: "admin", Password: "wrong"})
	assert.Equal(t, ErrNameUnauthorized, errName(err))

	res, err := svc.Login(ctx, &LoginPayload{Username: "admin", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)

	authed, err := svc.JWTAuth(ctx, res.AccessToken, &security.JWTScheme{RequiredScopes: []string{ScopeAdmin}})
	require.NoError(t, err)

	me, err := svc.Me(authed)
	require.NoError(t, err)
	assert.Equal(t, "admin@seatrade.test", me.Email)
	assert.NotNil(t, me.LastLogin)

	require.NoError(t, svc.Logout(authed))
	_, err = svc.JWTAuth(ctx, res.AccessToken, &security.JWTScheme{})
	assert.Equal(t, ErrNameUnauthorized, errName(err))
}

func TestAuthService_PasswordWhitespaceIsSignificant(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	_, err := svc.EnsureAdmin(ctx, "padded", "padded@seatrade.test", "  spaced pass  ")
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginPayload{Username: "padded", Password: "  spaced pass  "})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginPayload{Username: "padded", Password: "spaced pass"})
	assert.Equal(t, ErrNameUnauthorized, errName(err))
}

func TestAuthService_JWTAuthScopes(t *testing.T) {
	svc, db := newAuth(t)
	ctx := context.Background()

	hash, err := util.HashPassword("visitor-pass")
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.User{
		Username: "staffer", Email: "staff@seatrade.test", HashedPassword: hash, IsActive: true, IsStaff: true,
	}).Error)

	res, err := svc.Login(ctx, &LoginPayload{Username: "staffer", Password: "visitor-pass"})
	require.NoError(t, err)

	_, err = svc.JWTAuth(ctx, res.AccessToken, &security.JWTScheme{RequiredScopes: []string{ScopeStaff}})
	require.NoError(t, err)

	_, err = svc.JWTAuth(ctx, res.AccessToken, &security.JWTScheme{RequiredScopes: []string{ScopeAdmin}})
	assert.Equal(t, ErrNameForbidden, errName(err))

	_, err = svc.JWTAuth(ctx, "garbage", nil)
	assert.Equal(t, ErrNameUnauthorized, errName(err))

	_, err = svc.EnsureAdmin(ctx, "x", "x@y.z", "short")
	assert.Equal(t, ErrNameBadRequest, errName(err))
}

func TestHealthService_Check(t *testing.T) {
	svc := NewHealthService(newTestDB(t))
	res, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", res.Status)
	assert.Equal(t, "ok", res.Database)
}
