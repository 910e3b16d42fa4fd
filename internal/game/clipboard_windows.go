//go:build windows

package game

import (
	"fmt"
	"syscall"
	"unsafe"
)

// Native Win32 clipboard path, used only when the portable clipboard
// package reports an error. Ownership of the allocated buffer passes to
// the system once SetClipboardData succeeds; on any earlier failure the
// buffer must be freed here.

var (
	modUser32   = syscall.NewLazyDLL("user32.dll")
	modKernel32 = syscall.NewLazyDLL("kernel32.dll")

	procOpenClipboard    = modUser32.NewProc("OpenClipboard")
	procCloseClipboard   = modUser32.NewProc("CloseClipboard")
	procEmptyClipboard   = modUser32.NewProc("EmptyClipboard")
	procSetClipboardData = modUser32.NewProc("SetClipboardData")
	procGlobalAlloc      = modKernel32.NewProc("GlobalAlloc")
	procGlobalFree       = modKernel32.NewProc("GlobalFree")
	procGlobalLock       = modKernel32.NewProc("GlobalLock")
	procGlobalUnlock     = modKernel32.NewProc("GlobalUnlock")
)

const (
	gmemMoveable  = 0x0002
	cfUnicodeText = 13
)

func writeClipboardNative(text string) error {
	if text == "" {
		text = " "
	}
	u16, err := syscall.UTF16FromString(text)
	if err != nil {
		return fmt.Errorf("encode clipboard text: %w", err)
	}
	size := uintptr(len(u16) * 2)

	if r, _, err := procOpenClipboard.Call(0); r == 0 {
		return fmt.Errorf("open clipboard: %w", err)
	}
	defer procCloseClipboard.Call()
	procEmptyClipboard.Call()

	h, _, err := procGlobalAlloc.Call(gmemMoveable, size)
	if h == 0 {
		return fmt.Errorf("alloc clipboard buffer: %w", err)
	}
	p, _, err := procGlobalLock.Call(h)
	if p == 0 {
		procGlobalFree.Call(h)
		return fmt.Errorf("lock clipboard buffer: %w", err)
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(p)), size),
		unsafe.Slice((*byte)(unsafe.Pointer(&u16[0])), size))
	procGlobalUnlock.Call(h)

	if r, _, err := procSetClipboardData.Call(cfUnicodeText, h); r == 0 {
		procGlobalFree.Call(h)
		return fmt.Errorf("set clipboard data: %w", err)
	}
	return nil
}
