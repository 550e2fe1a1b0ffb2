package codec

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"svault/internal/domain"
)

// CurrentVersion is written into every container and payload.
const CurrentVersion = "2.0.0"

const (
	majorLegacy  = "v1"
	majorCurrent = "v2"
)

func canonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// major returns "v1", "v2", ... or "" when v is not a semantic version.
func major(v string) string {
	c := canonicalVersion(v)
	if c == "" {
		return ""
	}
	return semver.Major(c)
}

// checkVersion fails closed on malformed, newer or unknown versions.
func checkVersion(op, v string) error {
	c := canonicalVersion(v)
	if c == "" {
		return domain.Errorf(domain.KindFormat, op, "malformed vault version %s", strconv.Quote(v))
	}
	if semver.Compare(c, canonicalVersion(CurrentVersion)) > 0 {
		return &domain.Error{Kind: domain.KindFormat, Op: op, Msg: "unsupported vault version " + v, Err: domain.ErrUnsupported}
	}
	switch semver.Major(c) {
	case majorLegacy, majorCurrent:
		return nil
	default:
		return &domain.Error{Kind: domain.KindFormat, Op: op, Msg: "unsupported vault version " + v, Err: domain.ErrUnsupported}
	}
}

// NeedsMigration reports whether a container at version v is rewritten in the
// current format on the next save.
func NeedsMigration(v string) bool {
	c := canonicalVersion(v)
	return c != "" && semver.Compare(c, canonicalVersion(CurrentVersion)) < 0
}
