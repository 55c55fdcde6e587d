// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	confirmLabel = "OK"
	cancelLabel  = "Cancel"
)

// DialogCallback is called when dialog is dismissed.
type DialogCallback func()

// Dialog represents a modal dialog stacked over the grid.
type Dialog struct {
	*tview.Modal

	pages  *Pages
	pageID string
	onDone DialogCallback
}

// NewDialog creates a new dialog.
func NewDialog(pages *Pages, pageID string) *Dialog {
	d := &Dialog{
		Modal:  tview.NewModal(),
		pages:  pages,
		pageID: pageID,
	}
	d.SetBackgroundColor(tcell.ColorDefault)
	d.SetTextColor(tcell.ColorWhite)

	return d
}

// SetMessage sets the dialog message.
func (d *Dialog) SetMessage(msg string) *Dialog {
	d.Modal.SetText(msg)
	return d
}

// SetButtons configures dialog buttons.
func (d *Dialog) SetButtons(labels []string) *Dialog {
	d.AddButtons(labels)
	return d
}

// SetDoneCallback sets the callback for when dialog closes.
func (d *Dialog) SetDoneCallback(fn DialogCallback) *Dialog {
	d.onDone = fn
	return d
}

// SetButtonHandler sets the button click handler.
func (d *Dialog) SetButtonHandler(handler func(int, string)) *Dialog {
	d.SetDoneFunc(func(idx int, label string) {
		d.Dismiss()
		if handler != nil {
			handler(idx, label)
		}
	})
	return d
}

// SetColors configures dialog colors.
func (d *Dialog) SetColors(text, btnBg, btnText tcell.Color) *Dialog {
	d.SetTextColor(text)
	d.SetButtonBackgroundColor(btnBg)
	d.SetButtonTextColor(btnText)
	return d
}

// Show displays the dialog as a modal overlay.
func (d *Dialog) Show() {
	if d.pages != nil {
		d.pages.Push(d.pageID, d)
	}
}

// Dismiss removes the dialog from display.
func (d *Dialog) Dismiss() {
	if d.pages != nil {
		d.pages.Remove(d.pageID)
	}
	if d.onDone != nil {
		d.onDone()
	}
}

// PageID returns the dialog's page identifier.
func (d *Dialog) PageID() string {
	return d.pageID
}

// ConfirmDialog asks before running a destructive grid action.
func ConfirmDialog(pages *Pages, pageID, message string, ack func()) *Dialog {
	return NewDialog(pages, pageID).
		SetMessage(message).
		SetButtons([]string{confirmLabel, cancelLabel}).
		SetColors(tcell.ColorWhite, tcell.ColorDodgerBlue, tcell.ColorBlack).
		SetButtonHandler(func(_ int, label string) {
			if label == confirmLabel && ack != nil {
				ack()
			}
		})
}
