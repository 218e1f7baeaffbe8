package marketplace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/light-bringer/dealmarket-service/internal/pkg/schema"
)

const maxBodyBytes = 1 << 20

// decodeBody validates the JSON body against s and then binds it into dst.
// With partial set, missing required fields are not reported.
func decodeBody(c echo.Context, s *schema.Schema, partial bool, dst any) (map[string]any, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if payload == nil {
		payload = map[string]any{}
	}

	if err := validate(s, payload, partial); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return payload, nil
}

func validate(s *schema.Schema, payload map[string]any, partial bool) error {
	err := s.Validate(payload)
	if err == nil || !partial {
		return err
	}

	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	kept := make([]*schema.FieldError, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		if !errors.Is(fe, schema.ErrMissingField) {
			kept = append(kept, fe)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return &schema.ValidationError{Schema: verr.Schema, Errors: kept}
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidID, c.Param("id"))
	}
	return id, nil
}
