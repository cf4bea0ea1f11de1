package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar/shopcli/internal/models"
)

func TestLoadSave_RoundTrip(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	in := []models.Customer{
		{ID: 1, Name: "John Doe", Email: "john@example.com"},
		{ID: 2, Name: "Jane Roe", Email: "jane@example.com"},
	}
	require.NoError(t, Save(st, CollectionCustomers, in))

	out, err := Load[models.Customer](st, CollectionCustomers)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoad_MissingCollectionIsEmpty(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	out, err := Load[models.Customer](st, CollectionCustomers)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, Save(st, CollectionCustomers, []models.Customer{{ID: 1, Name: "John"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "customers.json", entries[0].Name())
}

func TestSave_OverwritesWholeCollection(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, Save(st, CollectionCustomers, []models.Customer{{ID: 1}, {ID: 2}}))
	require.NoError(t, Save(st, CollectionCustomers, []models.Customer{{ID: 3}}))

	out, err := Load[models.Customer](st, CollectionCustomers)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].ID)
}

func TestLoad_CorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "customers.json"), []byte("{not json"), 0o644))

	_, err = Load[models.Customer](st, CollectionCustomers)
	assert.Error(t, err)
}

func TestNextID(t *testing.T) {
	id := func(c models.Customer) int64 { return c.ID }

	assert.Equal(t, int64(1), NextID(nil, id))
	assert.Equal(t, int64(8), NextID([]models.Customer{{ID: 3}, {ID: 7}, {ID: 2}}, id))
}

func TestSession_RoundTrip(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	// Nobody logged in yet.
	sess, err := st.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, sess)

	require.NoError(t, st.SaveSession(Session{
		AccountID:  1,
		Username:   "customer1",
		Role:       models.RoleCustomer,
		CustomerID: 10,
	}))

	sess, err = st.LoadSession()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "customer1", sess.Username)
	assert.Equal(t, models.RoleCustomer, sess.Role)
	assert.Equal(t, int64(10), sess.CustomerID)

	require.NoError(t, st.ClearSession())
	sess, err = st.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, sess)

	// Clearing twice is fine.
	require.NoError(t, st.ClearSession())
}
