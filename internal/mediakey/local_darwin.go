//go:build darwin

package mediakey

/*
#cgo darwin CFLAGS: -x objective-c -fmodules -fobjc-arc
#cgo darwin LDFLAGS: -framework Cocoa
#include <Cocoa/Cocoa.h>
#include <dispatch/dispatch.h>
#include <stdint.h>

extern void goLocalMediaKeyEvent(uintptr_t handle, void *event);

static void onMainThread(dispatch_block_t block) {
        if ([NSThread isMainThread]) {
                block();
        } else {
                dispatch_sync(dispatch_get_main_queue(), block);
        }
}

static void *addLocalMediaKeyMonitor(uintptr_t handle) {
        __block id monitor = nil;
        onMainThread(^{
                monitor = [NSEvent addLocalMonitorForEventsMatchingMask:NSEventMaskSystemDefined
                                                                handler:^NSEvent *(NSEvent *event) {
                        goLocalMediaKeyEvent(handle, (__bridge void *)event);
                        return event;
                }];
        });
        if (monitor == nil) {
                return NULL;
        }
        return (__bridge_retained void *)monitor;
}

static void removeLocalMediaKeyMonitor(void *ref) {
        id monitor = (__bridge_transfer id)ref;
        onMainThread(^{
                [NSEvent removeMonitor:monitor];
        });
}
*/
import "C"

import (
	"errors"
	"runtime/cgo"
	"sync"
	"unsafe"
)

// WatchLocalEvents delivers the system-defined events that reach this
// application's own event loop to handle, on the main thread. It needs a
// running NSApplication (the tray provides one); events are always passed
// on to the application afterwards. stop removes the monitor.
func WatchLocalEvents(handle func(RawEvent)) (stop func(), err error) {
	h := cgo.NewHandle(handle)
	ref := C.addLocalMediaKeyMonitor(C.uintptr_t(h))
	if ref == nil {
		h.Delete()
		return nil, errors.New("install local NSEvent monitor")
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			C.removeLocalMediaKeyMonitor(ref)
			h.Delete()
		})
	}, nil
}

//export goLocalMediaKeyEvent
func goLocalMediaKeyEvent(handle C.uintptr_t, event unsafe.Pointer) {
	fn, ok := cgo.Handle(handle).Value().(func(RawEvent))
	if !ok {
		return
	}
	fn(rawEventFromNSEvent(event))
}
