package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amitmore-007/Recipe-Generator/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusConflict, "User already exists")

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"User already exists"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	decode := func(body string, limit int64) (payload, error) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := httpx.DecodeJSON(httptest.NewRecorder(), req, &p, limit)
		return p, err
	}

	t.Run("valid body", func(t *testing.T) {
		p, err := decode(`{"email":"a@b.co"}`, 0)
		require.NoError(t, err)
		require.Equal(t, "a@b.co", p.Email)
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		p, err := decode(`{"email":"a@b.co","extra":1}`, 0)
		require.NoError(t, err)
		require.Equal(t, "a@b.co", p.Email)
	})

	for name, body := range map[string]string{
		"empty":         ``,
		"syntax error":  `{"email":`,
		"trailing data": `{"email":"a@b.co"} {}`,
		"wrong type":    `{"email":42}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := decode(body, 0)
			require.ErrorIs(t, err, httpx.ErrInvalidBody)
		})
	}

	t.Run("body over limit", func(t *testing.T) {
		_, err := decode(`{"email":"`+strings.Repeat("x", 64)+`"}`, 16)
		require.ErrorIs(t, err, httpx.ErrInvalidBody)
	})
}
