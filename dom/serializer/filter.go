package serializer

import "github.com/arturoeanton/xmldom/dom"

// FilterAction is the serializer filter's per-node decision (spec §4.5.1),
// the output-side analogue of dom/parser's FilterAction: ACCEPT emits the
// node normally, REJECT drops it and everything under it, SKIP emits only
// its children (the node itself is elided), INTERRUPT aborts the write and
// returns whatever has already reached the sink.
type FilterAction int

const (
	FilterAccept FilterAction = iota
	FilterReject
	FilterSkip
	FilterInterrupt
)

// WhatToShow is a NodeKind bitmask, mirroring dom/parser's type of the same
// name: which node kinds a Filter wants consulted about at all.
type WhatToShow uint32

const showAll WhatToShow = ^WhatToShow(0)

func showBit(k dom.NodeKind) WhatToShow { return 1 << uint(k) }

func (w WhatToShow) Accepts(k dom.NodeKind) bool { return w&showBit(k) != 0 }

// ShowAll is the default WhatToShow: every kind is offered to the filter.
func ShowAll() WhatToShow { return showAll }

// Filter is the serializer-side half of the LSSerializer filter contract
// (spec §4.5.1): applied to every node whose whatToShow bit is set, except
// that xmlns declaration attributes are never offered (namespace fixup, not
// filterable content).
type Filter interface {
	WhatToShow() WhatToShow
	AcceptNode(n dom.Node) FilterAction
}
