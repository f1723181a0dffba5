// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"encoding/json"
	"fmt"
)

// View is the root of an outbound component tree: an ordered list of
// top-level builders. A View is a write-only description. Populate it,
// then Build or marshal it once; after that it is sealed and further
// additions record ErrViewSealed.
//
//	view := component.NewView()
//	view.Container(func(container *component.ContainerBuilder) {
//	    container.AccentColor("#5865F2")
//	    container.TextDisplay("## Deploy finished")
//	    container.ActionRow(func(row *component.ActionRowBuilder) {
//	        row.Button(component.ButtonSuccess, func(button *component.ButtonBuilder) {
//	            button.Label("Promote").CustomID("deploy:promote")
//	        })
//	    })
//	})
//	payload, err := json.Marshal(view)
type View struct {
	layout
	built []Component
}

// NewView returns an empty view, or, when populate is non-nil, a view
// populated by calling it.
func NewView(populate ...func(*View)) *View {
	view := &View{}
	for _, configure := range populate {
		if configure != nil {
			configure(view)
		}
	}
	return view
}

// ViewFromComponents returns a view holding already constructed nodes,
// typically parsed from a server payload, for re-serialization.
func ViewFromComponents(nodes ...Component) *View {
	view := &View{}
	for _, node := range nodes {
		view.Add(Prebuilt(node))
	}
	return view
}

// Container appends a container.
func (v *View) Container(configure func(*ContainerBuilder)) *ContainerBuilder {
	container := NewContainer()
	if configure != nil {
		configure(container)
	}
	v.add(container)
	return container
}

// Len returns the number of top-level builders.
func (v *View) Len() int { return len(v.children) }

// Build validates the view and returns its top-level nodes. The first
// call seals the view; later calls return the same result.
func (v *View) Build() ([]Component, error) {
	if v.err != nil {
		return nil, v.err
	}
	if v.sealed {
		return v.built, nil
	}
	nodes := make([]Component, 0, len(v.children))
	for index, child := range v.children {
		node, err := child.Build()
		if err != nil {
			return nil, fmt.Errorf("component: view[%d]: %w", index, err)
		}
		nodes = append(nodes, node)
	}
	if err := ValidateAll(nodes); err != nil {
		return nil, err
	}
	v.built = nodes
	v.sealed = true
	return nodes, nil
}

// MarshalJSON builds the view and encodes it as the wire component
// array.
func (v *View) MarshalJSON() ([]byte, error) {
	nodes, err := v.Build()
	if err != nil {
		return nil, err
	}
	return json.Marshal(Components(nodes))
}
