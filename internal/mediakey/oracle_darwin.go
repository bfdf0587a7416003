//go:build darwin

package mediakey

/*
#cgo darwin CFLAGS: -x objective-c -fobjc-arc
#cgo darwin LDFLAGS: -framework Foundation
#include <Foundation/Foundation.h>
#include <dispatch/dispatch.h>
#include <dlfcn.h>
#include <stdint.h>

typedef void (*nowPlayingPIDFunc)(dispatch_queue_t queue, void (^handler)(int pid));

static nowPlayingPIDFunc loadNowPlayingPID(void) {
        static nowPlayingPIDFunc fn = NULL;
        static dispatch_once_t once;
        dispatch_once(&once, ^{
                void *lib = dlopen("/System/Library/PrivateFrameworks/MediaRemote.framework/MediaRemote", RTLD_LAZY);
                if (lib != NULL) {
                        fn = (nowPlayingPIDFunc)dlsym(lib, "MRMediaRemoteGetNowPlayingApplicationPID");
                }
        });
        return fn;
}

// Returns 0 on success, -1 when MediaRemote is unavailable, -2 on timeout.
static int queryNowPlayingPID(int64_t timeoutMillis, int *pidOut) {
        nowPlayingPIDFunc fn = loadNowPlayingPID();
        if (fn == NULL) {
                return -1;
        }
        dispatch_semaphore_t sem = dispatch_semaphore_create(0);
        __block int result = 0;
        fn(dispatch_get_global_queue(QOS_CLASS_USER_INTERACTIVE, 0), ^(int pid) {
                result = pid;
                dispatch_semaphore_signal(sem);
        });
        if (dispatch_semaphore_wait(sem, dispatch_time(DISPATCH_TIME_NOW, timeoutMillis * NSEC_PER_MSEC)) != 0) {
                return -2;
        }
        *pidOut = result;
        return 0;
}
*/
import "C"

import (
	"fmt"
	"os"
	"time"
)

const nowPlayingTimeout = 50 * time.Millisecond

// nowPlayingOracle asks the MediaRemote framework which process currently
// owns "now playing". The framework is private; when it is missing or does
// not answer in time the monitor falls back to treating this process as the
// receiver.
type nowPlayingOracle struct {
	pid int
}

func defaultOracle() Oracle {
	return nowPlayingOracle{pid: os.Getpid()}
}

func (o nowPlayingOracle) IsActiveReceiver() (bool, error) {
	var pid C.int
	switch C.queryNowPlayingPID(C.int64_t(nowPlayingTimeout.Milliseconds()), &pid) {
	case 0:
	case -1:
		return false, fmt.Errorf("%w: MediaRemote framework not available", ErrOracleUnavailable)
	default:
		return false, fmt.Errorf("%w: now playing query timed out", ErrOracleUnavailable)
	}
	if pid == 0 {
		return true, nil
	}
	return isReceiver(uint32(o.pid), []playerState{{PID: uint32(pid), Playing: true}}), nil
}
