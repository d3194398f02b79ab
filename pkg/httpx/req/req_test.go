package req_test

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"storefront/pkg/httpx/req"
)

type reviewForm struct {
	Score float64 `json:"score" validate:"required,gte=0.5,lte=5"`
	Title string  `json:"title" validate:"max=5"`
}

func read(t *testing.T, body string, dest any) error {
	t.Helper()

	r := httptest.NewRequest("POST", "/", strings.NewReader(body))

	return req.Read(r, dest)
}

func TestReadValid(t *testing.T) {
	rq := require.New(t)

	var form reviewForm

	rq.NoError(read(t, `{"score": 4.5, "title": "Warm"}`, &form))
	rq.Equal(4.5, form.Score)
	rq.Equal("Warm", form.Title)
}

func TestReadInvalidJSON(t *testing.T) {
	rq := require.New(t)

	var form reviewForm

	err := read(t, `{"score": `, &form)
	rq.Error(err)
	rq.True(failure.IsInvalidArgumentError(err))

	var validationErr *req.ValidationError
	rq.False(errors.As(err, &validationErr))
}

func TestReadFieldErrors(t *testing.T) {
	rq := require.New(t)

	var form reviewForm

	err := read(t, `{"score": 9, "title": "way too long"}`, &form)
	rq.Error(err)
	rq.True(failure.IsInvalidArgumentError(err))

	var validationErr *req.ValidationError
	rq.True(errors.As(err, &validationErr))
	rq.Len(validationErr.Fields, 2)

	rq.Equal("score", validationErr.Fields[0].Field)
	rq.Equal("lte", validationErr.Fields[0].Rule)
	rq.Equal("Must be at most 5", validationErr.Fields[0].Message)

	rq.Equal("title", validationErr.Fields[1].Field)
	rq.Equal("max", validationErr.Fields[1].Rule)
}

func TestReadMissingRequiredField(t *testing.T) {
	rq := require.New(t)

	var form reviewForm

	err := read(t, `{"title": "ok"}`, &form)
	rq.Error(err)

	var validationErr *req.ValidationError
	rq.True(errors.As(err, &validationErr))
	rq.Equal("score", validationErr.Fields[0].Field)
	rq.Equal("required", validationErr.Fields[0].Rule)
}
