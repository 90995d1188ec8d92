package feeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	cases := map[uint64]string{
		0:          "0",
		7:          "7",
		999:        "999",
		1_000:      "1K",
		1_499:      "1K",
		1_500:      "2K",
		340_000:    "340K",
		1_000_000:  "1.0M",
		1_234_567:  "1.2M",
		25_000_000: "25.0M",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCount(in), "FormatCount(%d)", in)
	}
}

func TestFormatTraffic(t *testing.T) {
	cases := map[int64]string{
		0:         "10K+",
		500:       "500",
		999:       "999",
		1_000:     "1K+",
		340_400:   "340K+",
		1_200_000: "1.2M+",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatTraffic(in), "FormatTraffic(%d)", in)
	}
}
