//go:build darwin

package permissions

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Cocoa
#import <ApplicationServices/ApplicationServices.h>
#import <Cocoa/Cocoa.h>

int checkAccessibilityPermission(int prompt) {
    NSDictionary *options = @{(__bridge id)kAXTrustedCheckOptionPrompt: prompt ? @YES : @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}
*/
import "C"

const accessibilityGuidance = "Go to: System Settings → Privacy & Security → Accessibility and enable this app, then turn media key monitoring back on"

// CheckInputMonitoring checks if the app is trusted for accessibility, which
// the media key event tap needs. With prompt set, macOS shows its approval
// dialog when access is missing.
func CheckInputMonitoring(prompt bool) Report {
	p := C.int(0)
	if prompt {
		p = 1
	}
	if C.checkAccessibilityPermission(p) == 1 {
		return Report{Status: StatusGranted}
	}
	return Report{Status: StatusDenied, Guidance: accessibilityGuidance}
}
