package fetch

import (
	"net/url"
	"strings"
)

// Platform is a known applicant tracking system that hosts job postings.
type Platform string

// Known platforms.
const (
	PlatformGreenhouse      Platform = "greenhouse"
	PlatformLever           Platform = "lever"
	PlatformWorkday         Platform = "workday"
	PlatformSmartRecruiters Platform = "smartrecruiters"
	PlatformICIMS           Platform = "icims"
	PlatformUnknown         Platform = "unknown"
)

type platformProfile struct {
	hosts   []string
	content []string
	noise   []string
}

var platforms = map[Platform]platformProfile{
	PlatformGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	PlatformLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	PlatformWorkday: {
		hosts:   []string{"workday.com", "myworkdayjobs.com"},
		content: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	PlatformSmartRecruiters: {
		hosts:   []string{"smartrecruiters.com"},
		content: []string{".job-sections", "[itemprop='description']", ".job-description"},
		noise:   []string{".job-apply", ".sticky-apply"},
	},
	PlatformICIMS: {
		hosts:   []string{"icims.com"},
		content: []string{".iCIMS_JobContent", ".iCIMS_InfoMsg_Job", ".job-description"},
		noise:   []string{".iCIMS_JobOptions", ".iCIMS_Logo"},
	},
}

// commonNoise is removed on every platform.
var commonNoise = []string{
	"#application-form",
	".application-form",
	".apply-button-container",
	"[data-testid='application-form']",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	for platform, profile := range platforms {
		for _, h := range profile.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return platform
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a platform, falling
// back to the generic job posting selectors.
func PlatformContentSelectors(platform Platform) []string {
	if profile, ok := platforms[platform]; ok {
		return append(append([]string{}, profile.content...), JobPostingSelectors()...)
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns selectors for application forms, legal
// notices and share widgets on a platform.
func PlatformNoiseSelectors(platform Platform) []string {
	noise := append([]string{}, commonNoise...)
	if profile, ok := platforms[platform]; ok {
		noise = append(noise, profile.noise...)
	}
	return noise
}
