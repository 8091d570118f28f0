package mwapi

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Version identifies a MediaWiki release. Versions are compared for set
// membership only; there is no arithmetic on them.
type Version int

// Known MediaWiki releases, oldest first.
const (
	VersionUnknown Version = iota
	MW1_14
	MW1_15
	MW1_16
	MW1_17
	MW1_18
	MW1_19
	MW1_20
	MW1_21
	MW1_22
	MW1_23

	// VersionDevelopment marks a wiki running an unreleased build. It is
	// treated as supporting everything the latest release supports.
	VersionDevelopment
)

var versionNames = map[Version]string{
	VersionUnknown:     "unknown",
	MW1_14:             "1.14",
	MW1_15:             "1.15",
	MW1_16:             "1.16",
	MW1_17:             "1.17",
	MW1_18:             "1.18",
	MW1_19:             "1.19",
	MW1_20:             "1.20",
	MW1_21:             "1.21",
	MW1_22:             "1.22",
	MW1_23:             "1.23",
	VersionDevelopment: "development",
}

// String returns the release number, e.g. "1.18".
func (v Version) String() string {
	name, ok := versionNames[v]
	if !ok {
		return versionNames[VersionUnknown]
	}

	return name
}

// LatestVersion returns the newest release this library knows about.
func LatestVersion() Version {
	return MW1_23
}

var generatorPattern = regexp.MustCompile(`MediaWiki (\d+\.\d+)`)

// ParseVersion maps a siteinfo generator string such as "MediaWiki 1.18.1"
// to a Version. Unrecognized strings yield VersionUnknown.
func ParseVersion(generator string) Version {
	match := generatorPattern.FindStringSubmatch(generator)
	if match == nil {
		return VersionUnknown
	}

	if strings.Contains(generator, "alpha") || strings.Contains(generator, "wmf") {
		return VersionDevelopment
	}

	for version, name := range versionNames {
		if name == match[1] {
			return version
		}
	}

	return VersionUnknown
}

// VersionSet is an immutable set of versions attached to an action
// definition.
type VersionSet struct {
	members map[Version]struct{}
}

// SupportedBy builds the version set an action declares. Every action must
// declare at least one supported version; an empty declaration is a
// programmer error and panics.
func SupportedBy(versions ...Version) VersionSet {
	if len(versions) == 0 {
		panic("mwapi: action must declare at least one supported version")
	}

	members := make(map[Version]struct{}, len(versions))
	for _, v := range versions {
		members[v] = struct{}{}
	}

	return VersionSet{members: members}
}

// SupportedSince builds the set of all known versions from v onward,
// including development builds.
func SupportedSince(v Version) VersionSet {
	versions := []Version{VersionDevelopment}
	for candidate := v; candidate <= LatestVersion(); candidate++ {
		versions = append(versions, candidate)
	}

	return SupportedBy(versions...)
}

// Contains reports whether v is a member of the set.
func (s VersionSet) Contains(v Version) bool {
	_, ok := s.members[v]

	return ok
}

// Versions returns the members of the set, oldest first.
func (s VersionSet) Versions() []Version {
	versions := make([]Version, 0, len(s.members))
	for v := range s.members {
		versions = append(versions, v)
	}

	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })

	return versions
}

// String lists the members of the set, e.g. "1.15, 1.16, 1.17".
func (s VersionSet) String() string {
	names := make([]string, 0, len(s.members))
	for _, v := range s.Versions() {
		names = append(names, v.String())
	}

	return strings.Join(names, ", ")
}

// The capability table maps action identifiers to their declared version
// sets. It is populated from action definitions during package
// initialization and read-only afterwards, so lookups need no locking; the
// mutex only guards registration.
var (
	capabilityMu sync.Mutex
	capabilities = map[string]VersionSet{}
)

// RegisterAction records an action definition in the capability table.
// Registering the same identifier twice is a programmer error and panics.
// Intended to be called from init functions of packages defining actions.
func RegisterAction(id string, supported VersionSet) {
	capabilityMu.Lock()
	defer capabilityMu.Unlock()

	if _, exists := capabilities[id]; exists {
		panic("mwapi: action registered twice: " + id)
	}

	capabilities[id] = supported
}

// IsSupported reports whether the action identified by id is available on
// the given version. Unknown identifiers are unsupported, not an error.
func IsSupported(id string, v Version) bool {
	set, ok := capabilities[id]
	if !ok {
		return false
	}

	return set.Contains(v)
}
