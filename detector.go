package utfall

import "github.com/nao1215/utfall/domain/model"

// ShouldFetch decides whether the remote file must be downloaded.
// It only skips when the local file exists and the remote marker is known and
// equal to the stored one. An absent remote marker always means fetch.
func ShouldFetch(remote, stored model.FreshnessMarker, localFileExists bool) bool {
	if !localFileExists {
		return true
	}
	if remote.IsZero() {
		return true
	}
	return !remote.Equal(stored)
}

// fetchReason explains a ShouldFetch decision for logging.
func fetchReason(remote, stored model.FreshnessMarker, localFileExists bool) string {
	switch {
	case !localFileExists:
		return "local file missing"
	case remote.IsZero():
		return "remote last-modified unknown"
	case !remote.Equal(stored):
		return "remote last-modified changed"
	default:
		return "unchanged"
	}
}
