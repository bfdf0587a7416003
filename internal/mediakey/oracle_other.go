//go:build !darwin && !linux

package mediakey

func defaultOracle() Oracle {
	return OracleFunc(func() (bool, error) {
		return false, ErrOracleUnavailable
	})
}
