package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://boards.greenhouse.io/neogen/jobs/123", PlatformGreenhouse},
		{"https://job-boards.greenhouse.io/acme/jobs/1", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc", PlatformLever},
		{"https://neogen.wd5.myworkdayjobs.com/en-US/careers/job/1", PlatformWorkday},
		{"https://jobs.smartrecruiters.com/Acme/123", PlatformSmartRecruiters},
		{"https://careers-neogen.icims.com/jobs/1/job", PlatformICIMS},
		{"https://example.com/careers/chemist", PlatformUnknown},
		{"https://notgreenhouse.io.example.com/", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	selectors := PlatformContentSelectors(PlatformGreenhouse)
	assert.Equal(t, ".job__description.body", selectors[0])
	assert.Contains(t, selectors, "main")

	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformNoiseSelectors(t *testing.T) {
	greenhouse := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Contains(t, greenhouse, ".eeo-statement")
	assert.Contains(t, greenhouse, "#usa_self_id_section")

	unknown := PlatformNoiseSelectors(PlatformUnknown)
	assert.Equal(t, commonNoise, unknown)

	// The shared slice is never modified by appends.
	_ = PlatformNoiseSelectors(PlatformLever)
	assert.Len(t, PlatformNoiseSelectors(PlatformUnknown), len(commonNoise))
}
