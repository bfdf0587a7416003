//go:build darwin

package mediakey

/*
#cgo darwin CFLAGS: -x objective-c -fmodules -fobjc-arc
#cgo darwin LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Cocoa
#include <ApplicationServices/ApplicationServices.h>
#include <Cocoa/Cocoa.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

typedef struct {
        int type;
        int subtype;
        int64_t data1;
} rawMediaKeyEvent;

extern CGEventRef goMediaKeyTapEvent(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *userInfo);

static CFMachPortRef createMediaKeyTap(uintptr_t handle) {
        CGEventMask mask = ((CGEventMask)1) << NSEventTypeSystemDefined;
        return CGEventTapCreate(kCGSessionEventTap,
                                kCGHeadInsertEventTap,
                                kCGEventTapOptionDefault,
                                mask,
                                goMediaKeyTapEvent,
                                (void *)handle);
}

static CFRunLoopSourceRef attachTap(CFMachPortRef tap, CFRunLoopRef *loopOut) {
        CFRunLoopSourceRef source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
        if (source == NULL) {
                return NULL;
        }
        CFRunLoopRef loop = CFRunLoopGetCurrent();
        CFRunLoopAddSource(loop, source, kCFRunLoopCommonModes);
        CGEventTapEnable(tap, true);
        *loopOut = loop;
        return source;
}

static void detachTap(CFMachPortRef tap, CFRunLoopSourceRef source, CFRunLoopRef loop) {
        CGEventTapEnable(tap, false);
        CFRunLoopRemoveSource(loop, source, kCFRunLoopCommonModes);
        CFMachPortInvalidate(tap);
        CFRelease(source);
        CFRelease(tap);
}

static void runLoopSlice(double seconds) {
        CFRunLoopRunInMode(kCFRunLoopDefaultMode, seconds, false);
}

static void stopRunLoop(CFRunLoopRef loop) {
        CFRunLoopStop(loop);
}

static void reenableTap(CFMachPortRef tap) {
        CGEventTapEnable(tap, true);
}

static int isTapDisabledEvent(CGEventType type) {
        return type == kCGEventTapDisabledByTimeout || type == kCGEventTapDisabledByUserInput;
}

static rawMediaKeyEvent decodeNSEvent(NSEvent *ev) {
        rawMediaKeyEvent raw = {0, 0, 0};
        if (ev == nil) {
                return raw;
        }
        raw.type = (int)ev.type;
        if (ev.type == NSEventTypeSystemDefined) {
                raw.subtype = (int)ev.subtype;
                raw.data1 = (int64_t)ev.data1;
        }
        return raw;
}

static rawMediaKeyEvent decodeCGEvent(CGEventRef event) {
        rawMediaKeyEvent raw;
        @autoreleasepool {
                raw = decodeNSEvent([NSEvent eventWithCGEvent:event]);
        }
        return raw;
}

static rawMediaKeyEvent decodeLocalEvent(void *event) {
        rawMediaKeyEvent raw;
        @autoreleasepool {
                raw = decodeNSEvent((__bridge NSEvent *)event);
        }
        return raw;
}
*/
import "C"

import (
	"fmt"
	"runtime"
	"runtime/cgo"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/rs/zerolog"
)

// runLoopSlice bounds how long the tap loop sleeps before rechecking the
// stop flag.
const runLoopSlice = 0.25

type quartzTap struct {
	log zerolog.Logger
}

func defaultTap(log zerolog.Logger) Tap {
	return quartzTap{log: log}
}

type quartzInstallation struct {
	handle Handler
	log    zerolog.Logger

	port     C.CFMachPortRef
	loop     C.CFRunLoopRef
	ready    chan error
	done     chan struct{}
	stopping atomic.Bool
	stopOnce sync.Once
}

// Install creates a Quartz session event tap for system-defined events on a
// goroutine locked to its own OS thread, which then runs the tap's run loop.
func (t quartzTap) Install(handle Handler) (Installation, error) {
	inst := &quartzInstallation{
		handle: handle,
		log:    t.log,
		ready:  make(chan error, 1),
		done:   make(chan struct{}),
	}
	go inst.run()
	if err := <-inst.ready; err != nil {
		<-inst.done
		return nil, err
	}
	return inst, nil
}

func (i *quartzInstallation) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(i.done)

	handle := cgo.NewHandle(i)
	defer handle.Delete()

	port := C.createMediaKeyTap(C.uintptr_t(handle))
	if port == 0 {
		i.ready <- fmt.Errorf("create quartz event tap: %w", ErrPermissionDenied)
		return
	}
	var loop C.CFRunLoopRef
	source := C.attachTap(port, &loop)
	if source == 0 {
		C.CFMachPortInvalidate(port)
		C.CFRelease(C.CFTypeRef(port))
		i.ready <- fmt.Errorf("create run loop source for event tap")
		return
	}
	i.port = port
	i.loop = loop
	i.ready <- nil

	i.log.Debug().Msg("Quartz media key tap running")
	for !i.stopping.Load() {
		C.runLoopSlice(C.double(runLoopSlice))
	}
	C.detachTap(port, source, loop)
	i.log.Debug().Msg("Quartz media key tap released")
}

func (i *quartzInstallation) Remove() {
	i.stopOnce.Do(func() {
		i.stopping.Store(true)
		C.stopRunLoop(i.loop)
	})
	<-i.done
}

//export goMediaKeyTapEvent
func goMediaKeyTapEvent(_ C.CGEventTapProxy, eventType C.CGEventType, event C.CGEventRef, userInfo unsafe.Pointer) C.CGEventRef {
	handle := cgo.Handle(uintptr(userInfo))
	inst, ok := handle.Value().(*quartzInstallation)
	if !ok {
		return event
	}

	if C.isTapDisabledEvent(eventType) != 0 {
		// The OS disables slow taps; turn it back on unless shutting down.
		if !inst.stopping.Load() && inst.port != 0 {
			inst.log.Warn().Msg("Media key tap disabled by the system, re-enabling")
			C.reenableTap(inst.port)
		}
		return event
	}

	raw := C.decodeCGEvent(event)
	verdict := inst.handle(RawEvent{
		Type:    int(raw._type),
		Subtype: int(raw.subtype),
		Data1:   int64(raw.data1),
	})
	if verdict == Consume {
		return 0
	}
	return event
}

// rawEventFromNSEvent converts an NSEvent, passed as an unretained object
// pointer.
func rawEventFromNSEvent(event unsafe.Pointer) RawEvent {
	if event == nil {
		return RawEvent{}
	}
	raw := C.decodeLocalEvent(event)
	return RawEvent{
		Type:    int(raw._type),
		Subtype: int(raw.subtype),
		Data1:   int64(raw.data1),
	}
}
