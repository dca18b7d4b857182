package gitbook

import (
	"net/url"
	"strings"
)

// ContentBasePath returns the content root of a space, or of one of its
// change requests when changeRequestID is non-empty.
func ContentBasePath(spaceID, changeRequestID string) string {
	if changeRequestID != "" {
		return changeRequestPath(spaceID, changeRequestID) + "/content"
	}
	return spacePath(spaceID) + "/content"
}

// CommentsBasePath returns the comment collection of a space, or of one of
// its change requests when changeRequestID is non-empty.
func CommentsBasePath(spaceID, changeRequestID string) string {
	if changeRequestID != "" {
		return changeRequestPath(spaceID, changeRequestID) + "/comments"
	}
	return spacePath(spaceID) + "/comments"
}

func spacePath(spaceID string) string {
	return "/spaces/" + url.PathEscape(spaceID)
}

func orgPath(orgID string) string {
	return "/orgs/" + url.PathEscape(orgID)
}

func changeRequestPath(spaceID, changeRequestID string) string {
	return spacePath(spaceID) + "/change-requests/" + url.PathEscape(changeRequestID)
}

// escapePagePath escapes each segment of a slash-separated page path.
func escapePagePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
