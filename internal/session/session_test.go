package session

import (
	"testing"
	"time"

	"github.com/driftline/infinite-library/internal/browse"
	"github.com/driftline/infinite-library/internal/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *Service {
	return NewService(corpus.Default(), time.Hour, zap.NewNop())
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestService_Create_StartsFromDefaultView(t *testing.T) {
	svc := newTestService()

	sess := svc.Create()

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, browse.FactionAll, sess.State.FactionFilter)
	assert.Equal(t, "d_silted_reckoning", sess.State.ActiveDocumentID)
	assert.Empty(t, sess.State.SearchTerm)
	assert.False(t, sess.State.ShowCanonOnly)
}

func TestService_Create_SessionsAreIndependent(t *testing.T) {
	svc := newTestService()

	a := svc.Create()
	b := svc.Create()
	require.NotEqual(t, a.ID, b.ID)

	_, err := svc.ApplyView(a.ID, ViewChanges{SearchTerm: strPtr("smoke")})
	require.NoError(t, err)

	got, err := svc.Get(b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.State.SearchTerm, "a write to one session must not leak into another")
}

func TestService_Get_UnknownID(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ApplyView_PartialChanges(t *testing.T) {
	svc := newTestService()
	sess := svc.Create()

	got, err := svc.ApplyView(sess.ID, ViewChanges{SearchTerm: strPtr("orrin")})
	require.NoError(t, err)
	assert.Equal(t, "orrin", got.State.SearchTerm)

	// only the canon flag this time; the search term must survive
	got, err = svc.ApplyView(sess.ID, ViewChanges{ShowCanonOnly: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "orrin", got.State.SearchTerm)
	assert.True(t, got.State.ShowCanonOnly)
}

func TestService_ApplyView_ReconcilesActive(t *testing.T) {
	svc := newTestService()
	sess := svc.Create()

	require.Equal(t, "d_silted_reckoning", sess.State.ActiveDocumentID)

	got, err := svc.ApplyView(sess.ID, ViewChanges{FactionFilter: strPtr("Skyward Synod")})
	require.NoError(t, err)
	assert.Equal(t, "d_origin_sky", got.State.ActiveDocumentID,
		"active document left the visible set, first visible takes over")
}

func TestService_ApplyView_UnknownSession(t *testing.T) {
	svc := newTestService()

	_, err := svc.ApplyView("nope", ViewChanges{SearchTerm: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Select(t *testing.T) {
	svc := newTestService()
	sess := svc.Create()

	got, err := svc.Select(sess.ID, "d_tidal_vow")
	require.NoError(t, err)
	assert.Equal(t, "d_tidal_vow", got.State.ActiveDocumentID)

	// the stored state moved too, not just the returned copy
	stored, err := svc.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "d_tidal_vow", stored.State.ActiveDocumentID)
}

func TestService_Delete(t *testing.T) {
	svc := newTestService()
	sess := svc.Create()

	svc.Delete(sess.ID)

	_, err := svc.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	svc.Delete(sess.ID) // deleting again is a no-op
}

func TestService_Expiry(t *testing.T) {
	svc := NewService(corpus.Default(), 20*time.Millisecond, zap.NewNop())
	sess := svc.Create()

	time.Sleep(40 * time.Millisecond)

	_, err := svc.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Count(t *testing.T) {
	svc := newTestService()

	assert.Equal(t, 0, svc.Count())

	svc.Create()
	svc.Create()
	assert.Equal(t, 2, svc.Count())
}
