// Package model defines the wire types shared by the dataset service,
// its record-storage client and its DMS backend clients.
package model

import (
	"regexp"
	"strings"
)

// Record is a dataset registry record. Records are immutable value
// objects: updates produce a new record from the record store rather
// than mutating an existing one.
type Record struct {
	ID   string         `json:"id,omitempty"`
	Kind string         `json:"kind"`
	Data map[string]any `json:"data"`
}

// ResourceTypeIDProperty is the data property carrying the resource type
// identifier used for DMS backend resolution.
const ResourceTypeIDProperty = "ResourceTypeID"

// DatasetPropertiesProperty is the data property every dataset registry
// record must carry.
const DatasetPropertiesProperty = "DatasetProperties"

var (
	resourceTypeIDPattern = regexp.MustCompile(`\w+:+\w+:+[\w-]+`)

	// datasetKindPattern matches group:namespace:dataset--SubType:M.m.p
	// where the entity group is literally "dataset".
	datasetKindPattern = regexp.MustCompile(`^[\w\-\.]+:[\w\-\.]+:dataset--[\w\.\-]+:[0-9]+\.[0-9]+\.[0-9]+$`)
)

// ExtractResourceTypeID applies the resource type identifier pattern to a
// raw property value and returns the matched substring. The second return
// is false when the value does not contain a match.
func ExtractResourceTypeID(value string) (string, bool) {
	match := resourceTypeIDPattern.FindString(value)
	return match, match != ""
}

// ResourceTypeID returns the record's resource type identifier from its
// data map. Missing property, non-string value and a value that fails the
// pattern are all reported the same way: ok is false.
func (r Record) ResourceTypeID() (string, bool) {
	raw, present := r.Data[ResourceTypeIDProperty]
	if !present {
		return "", false
	}
	value, isString := raw.(string)
	if !isString {
		return "", false
	}
	return ExtractResourceTypeID(value)
}

// IsDatasetKind reports whether kind is a well-formed dataset kind
// (entity group "dataset", numeric three-part version).
func IsDatasetKind(kind string) bool {
	return datasetKindPattern.MatchString(kind)
}

// KindSubType returns the dataset subtype segment of a dataset kind,
// e.g. "File.Generic" for "osdu:wks:dataset--File.Generic:1.0.0".
func KindSubType(kind string) string {
	parts := strings.Split(kind, ":")
	if len(parts) != 4 {
		return ""
	}
	return strings.TrimPrefix(parts[2], "dataset--")
}

// IsRecordIDValid checks a record id of the form tenant:subtype:uniqueId
// against the request tenant and the record's kind: the tenant segment
// must equal the tenant and the subtype segment must equal the kind's
// dataset subtype, both case-insensitively.
func IsRecordIDValid(id, tenant, kind string) bool {
	parts := strings.Split(id, ":")
	if len(parts) != 3 || parts[2] == "" {
		return false
	}
	if !strings.EqualFold(parts[0], tenant) {
		return false
	}
	subType := KindSubType(kind)
	return subType != "" && strings.EqualFold(parts[1], subType)
}
