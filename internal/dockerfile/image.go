package dockerfile

import (
	"strings"

	"github.com/distribution/reference"
)

// DefaultTag is the sentinel tag an Image carries when none is given.
const DefaultTag = "latest"

// LightSuffix names the musl-libc-based distro variant used as the light
// equivalent of a full base image (e.g. "node:22.9.0" -> "node:22.9.0-alpine").
const LightSuffix = "alpine"

// lightMarkers are the tag substrings that mark an image as already light.
// Kept as a table so the slim/musl mapping can evolve without touching the
// rules that call IsLight.
var lightMarkers = []string{"alpine", "slim"}

// Image is a (name, tag) pair parsed from a FROM instruction or a rule's
// own replacement value. Unlike a general image reference, it never carries
// a digest: imgshrink only rewrites human-authored base images.
type Image struct {
	name string
	tag  string
}

// NewImage parses full_name (e.g. "node", "node:20-slim") into an Image.
// A missing tag defaults to DefaultTag. The name is normalized through
// github.com/distribution/reference when it parses as a valid reference;
// names that don't (build-arg placeholders like "${BASE_IMAGE}") are kept
// verbatim so the AST builder never fails on them.
func NewImage(fullName string) Image {
	name, tag := fullName, DefaultTag
	if i := strings.LastIndex(fullName, ":"); i >= 0 && !strings.Contains(fullName[i:], "/") {
		name, tag = fullName[:i], fullName[i+1:]
	}

	if named, err := reference.ParseNormalizedNamed(fullName); err == nil {
		if tagged, ok := named.(reference.Tagged); ok {
			name, tag = reference.FamiliarName(named), tagged.Tag()
		} else {
			name, tag = reference.FamiliarName(named), DefaultTag
		}
	}

	return Image{name: name, tag: tag}
}

// Name returns the image name, without the tag.
func (img Image) Name() string { return img.name }

// Tag returns the image tag, defaulting to DefaultTag when none was given.
func (img Image) Tag() string { return img.tag }

// FullName renders the canonical "name:tag" form.
func (img Image) FullName() string { return img.name + ":" + img.tag }

// IsLight reports whether the tag names a minimal-distro variant (slim or
// musl-libc/alpine based).
func (img Image) IsLight() bool {
	lower := strings.ToLower(img.tag)
	for _, marker := range lightMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// LightEquivalentTag derives the light-variant tag for the image's current
// tag: bare "latest" becomes LightSuffix, a version tag gets LightSuffix
// appended, and an already-light tag is returned unchanged.
func (img Image) LightEquivalentTag() string {
	if img.IsLight() {
		return img.tag
	}
	if img.tag == DefaultTag {
		return LightSuffix
	}
	return img.tag + "-" + LightSuffix
}
