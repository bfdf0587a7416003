//go:build !darwin

package permissions

// CheckInputMonitoring reports no permission requirement on non-macOS platforms.
func CheckInputMonitoring(prompt bool) Report {
	return Report{Status: StatusNotApplicable}
}
