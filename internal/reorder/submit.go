package reorder

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Orderer persists a full task order.
// The call is a full overwrite: submitting the same order twice is a no-op.
type Orderer interface {
	Reorder(ctx context.Context, ids []int64) error
}

// Submitter sends completed drag orders to the persistence collaborator.
//
// A failed submission is logged and returned; it is neither retried nor rolled
// back. The rendered order stays as dragged until the next refresh replaces it
// with the server's order.
type Submitter struct {
	orderer Orderer
	log     logrus.FieldLogger
}

// NewSubmitter returns a Submitter writing through o.
func NewSubmitter(o Orderer, log logrus.FieldLogger) *Submitter {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Submitter{orderer: o, log: log}
}

// Submit sends ids, in sequence, as the new order. An empty order is not sent.
func (s *Submitter) Submit(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := Validate(ids); err != nil {
		return err
	}

	if err := s.orderer.Reorder(ctx, ids); err != nil {
		s.log.WithError(err).WithField("ids", ids).Warn("saving task order failed")
		return err
	}
	s.log.WithField("ids", ids).Debug("task order saved")
	return nil
}
