// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsresource

import "fmt"

// Metadata carries the scalar fields that travel with a Resource
// across both formats: a producer timestamp and the four components
// of a version number. Interpretation of these fields is left to the
// caller; the codec only preserves them verbatim.
type Metadata struct {
	Timestamp uint64
	Major     uint32
	Minor     uint32
	Revision  uint32
	Build     uint32
}

// Resource is the root container: a Metadata block plus an ordered
// collection of Regions. Region names are unique within a Resource.
type Resource struct {
	Metadata Metadata
	Regions  []*Region
}

// Region returns the region with the given name and true, or nil and
// false if no such region exists.
func (r *Resource) Region(name string) (*Region, bool) {
	for _, region := range r.Regions {
		if region.Name == name {
			return region, true
		}
	}
	return nil, false
}

// AddRegion appends a new region to the Resource. It returns an error
// if a region with the same name already exists — region names are
// unique within a Resource.
func (r *Resource) AddRegion(region *Region) error {
	if _, exists := r.Region(region.Name); exists {
		return fmt.Errorf("lsresource: duplicate region %q", region.Name)
	}
	r.Regions = append(r.Regions, region)
	return nil
}

// Region is a named top-level subtree. Root holds exactly one Node
// whose Name equals the region's own Name; every parent-less node
// found in a flat LSF node array becomes one Region.
type Region struct {
	Name string
	Root *Node
}
