// Package rxbuf provides the receive buffer owned by the target dispatcher.
package rxbuf

// The buffer has a fixed capacity chosen at construction. Commands fill the
// head of the buffer with request payload read from the link, and use the
// rest as staging space for peripheral output. Nothing here reallocates:
// every access is checked against the declared capacity.
