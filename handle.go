package subtle

// Handle is an opaque, process-unique token identifying an entry in
// the Key Store. It is never exposed to callers directly; only a
// CryptoKey wraps it.
type Handle uint64
