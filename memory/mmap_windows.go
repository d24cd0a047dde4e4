//go:build windows

package memory

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func mapCode(size int) ([]byte, error) {
	return virtualAlloc(size, windows.PAGE_EXECUTE_READWRITE)
}

func mapData(size int) ([]byte, error) {
	return virtualAlloc(size, windows.PAGE_READWRITE)
}

func virtualAlloc(size int, protect uint32) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, protect)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func unmap(b []byte) error {
	return windows.VirtualFree(uintptr(unsafe.Pointer(&b[0])), 0, windows.MEM_RELEASE)
}
