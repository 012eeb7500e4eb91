package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxBodySize - ограничение на размер тела запроса
const maxBodySize = 1 << 20

// Decode - читает JSON тело запроса в значение типа T
func Decode[T any](body io.Reader) (T, error) {
	var payload T

	dec := json.NewDecoder(io.LimitReader(body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, errors.New("empty request body")
		}
		return payload, fmt.Errorf("decode request: %w", err)
	}

	return payload, nil
}
