package store

// The application_id pragma is stored by SQLite as a signed 32-bit integer.
// The spec's signature (0xA17E6D42) does not fit in a positive int32, so it
// is persisted as the bitwise-equivalent signed value and reinterpreted back
// to unsigned on read. This file is the one place that reinterpretation
// happens.

func applicationIDSigned(id uint32) int32 {
	return int32(id)
}

func applicationIDFromSigned(v int64) uint32 {
	return uint32(int32(v))
}
