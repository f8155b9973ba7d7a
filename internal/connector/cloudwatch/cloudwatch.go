// Package cloudwatch decodes the compressed envelope a CloudWatch Logs
// subscription delivers to the function.
package cloudwatch

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/HyperChonk/log-forwarder/internal/model"
)

// Decode unpacks a subscription payload: base64, then gzip, then a JSON
// envelope with logGroup, logStream, and logEvents. Messages pass through
// untouched; any stage failing is a decode error and fails the invocation.
func Decode(data string) (model.Batch, error) {
	compressed, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return model.Batch{}, fmt.Errorf("cloudwatch: decode base64: %w", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return model.Batch{}, fmt.Errorf("cloudwatch: open gzip stream: %w", err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(zr)
	if err != nil {
		return model.Batch{}, fmt.Errorf("cloudwatch: decompress: %w", err)
	}

	var batch model.Batch
	if err := json.Unmarshal(payload, &batch); err != nil {
		return model.Batch{}, fmt.Errorf("cloudwatch: parse envelope: %w", err)
	}
	return batch, nil
}
