// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

// opcode identifies a mutation intent.
type opcode uint8

const (
	opRefresh opcode = iota
	opAdd
	opRemoveAt
	opRemoveValue
	opReplace
	opRefreshItem
	opRefreshItemAt
	opRefreshRange
	opRefreshRangeAt
	opHeaderVisible
	opHeaderContent
	opFooterVisible
	opFooterContent
	opScroll
	opClose
	opLoading
	opFailed
	opNoMore
	opPage
	opFence
)

var opcodeNames = [...]string{
	opRefresh:        "refresh",
	opAdd:            "add",
	opRemoveAt:       "remove_at",
	opRemoveValue:    "remove",
	opReplace:        "replace",
	opRefreshItem:    "refresh_item",
	opRefreshItemAt:  "refresh_item_at",
	opRefreshRange:   "refresh_range",
	opRefreshRangeAt: "refresh_range_at",
	opHeaderVisible:  "header_visible",
	opHeaderContent:  "header_content",
	opFooterVisible:  "footer_visible",
	opFooterContent:  "footer_content",
	opScroll:         "scroll",
	opClose:          "close",
	opLoading:        "loading",
	opFailed:         "failed",
	opNoMore:         "no_more",
	opPage:           "page",
	opFence:          "fence",
}

func (o opcode) String() string {
	if int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return "unknown"
}

// command is one queued mutation intent. Fields are interpreted per op:
//
//	refresh        list, top, withHeader, offset
//	add            list, index
//	remove_at      index
//	remove         value
//	replace        list, index, payload
//	refresh_item*  value or index, count, payload
//	header/footer  visible or content
//	scroll         index, offset
//	page           epoch
//	fence          fence
type command[T comparable] struct {
	op         opcode
	list       []T
	value      T
	index      int
	count      int
	offset     int
	top        bool
	withHeader bool
	visible    bool
	payload    any
	content    Content
	epoch      uint64
	fence      chan struct{}
}
