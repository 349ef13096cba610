package result

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessCarriesData(t *testing.T) {
	r := Success(42)
	require.True(t, r.OK())
	v, err := r.Unpack()
	assert.Nil(t, err)
	assert.Equal(t, 42, v)
}

func TestFailDefaultsTo400(t *testing.T) {
	r := Fail[string]("bad")
	require.False(t, r.OK())
	assert.Equal(t, "", r.Data())
	assert.Equal(t, http.StatusBadRequest, r.Err().Code)
	assert.Equal(t, "bad", r.Err().Message)

	r = Fail[string]("gone", http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, r.Err().Code)
}

func TestForwardKeepsError(t *testing.T) {
	src := FailWith[int](NotFound("budget"))
	dst := Forward[string](src)
	require.False(t, dst.OK())
	assert.Equal(t, "Budget not found", dst.Err().Message)

	ok := Forward[string](Success(1))
	require.False(t, ok.OK())
	assert.Equal(t, http.StatusInternalServerError, ok.Err().Code)
	assert.Equal(t, "Internal server error", ok.Err().Message)
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Invalid transaction ID", InvalidID("Transaction").Message)
	assert.Equal(t, "Invalid ID", InvalidID("").Message)
	assert.Equal(t, http.StatusConflict, AlreadyExists("category").Code)
	assert.Equal(t, "Category already exists", AlreadyExists("category").Message)
	assert.Equal(t, "Missing required field: amount", MissingField("amount").Message)
	assert.Equal(t, http.StatusInternalServerError, Internal[int]().Err().Code)
}
