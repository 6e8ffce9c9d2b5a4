package translate

import (
	"errors"

	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// User facing notices. The backend's own detail message wins when it sends one.
const (
	NoticeAutoSwap     = "Pick a source language before swapping; auto-detect cannot be a target."
	NoticeConnectivity = "Unable to reach the translation service. Check your connection."
	NoticeFailed       = "Translation failed. Try again."
)

// FailureNotice maps a backend error to the copy shown to the user. Service
// failures surface the backend's detail verbatim; transport failures collapse
// to a generic connectivity message so socket internals never reach the UI.
func FailureNotice(err error) string {
	if detail := interfaces.ServiceDetail(err); detail != "" {
		return detail
	}
	if errors.Is(err, interfaces.ErrTransportFailure) {
		return NoticeConnectivity
	}
	return NoticeFailed
}
