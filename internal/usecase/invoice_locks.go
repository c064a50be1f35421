package usecase

import "sync"

// invoiceLocks serializes payment-ledger mutations per invoice id. The
// repository's conditional write on the invoice version is the cross-process
// backstop; this keeps same-process mutators from ever racing at all.
type invoiceLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newInvoiceLocks() *invoiceLocks {
	return &invoiceLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *invoiceLocks) get(invoiceID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[invoiceID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[invoiceID] = m
	}
	return m
}
