package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultBroadcastWorkers uint = 5
	defaultSendTimeout           = 10 * time.Second
)

type BroadcastResult struct {
	Success int
	Failed  int
}

// Broadcaster отправляет одно сообщение списку получателей пулом воркеров.
type Broadcaster struct {
	sender  Sender
	workers uint
	l       *logrus.Entry
}

func NewBroadcaster(sender Sender, l *logrus.Logger) *Broadcaster {
	return &Broadcaster{
		sender:  sender,
		workers: defaultBroadcastWorkers,
		l: l.WithFields(logrus.Fields{
			"component": "telegram",
			"module":    "broadcaster",
		}),
	}
}

// SetWorkers устанавливает кол-во параллельных отправителей.
func (b *Broadcaster) SetWorkers(workers uint) *Broadcaster {
	if workers > 0 {
		b.workers = workers
	}
	return b
}

// Broadcast рассылает text всем recipients и ждет окончания. Получатели, до которых не дошла очередь из-за
// отмены ctx, считаются неудачными.
func (b *Broadcaster) Broadcast(ctx context.Context, recipients []int64, text string) BroadcastResult {
	if len(recipients) == 0 {
		return BroadcastResult{}
	}

	var taskCh = make(chan int64, len(recipients))
	for _, id := range recipients {
		taskCh <- id
	}
	close(taskCh)

	workers := min(b.workers, uint(len(recipients)))

	wg := new(sync.WaitGroup)
	wg.Add(int(workers)) // nolint:gosec

	var resultCh = make(chan error, len(recipients))
	for i := range workers {
		go b.worker(ctx, wg, i+1, text, taskCh, resultCh)
	}
	wg.Wait()

	close(resultCh)

	var result BroadcastResult
	for err := range resultCh {
		if err == nil {
			result.Success++
		}
	}
	result.Failed = len(recipients) - result.Success

	b.l.WithFields(logrus.Fields{
		"recipients": len(recipients),
		"success":    result.Success,
		"failed":     result.Failed,
	}).Info("broadcast finished")
	return result
}

func (b *Broadcaster) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	text string,
	taskCh <-chan int64,
	resultCh chan<- error,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case chatID, ok := <-taskCh:
			if !ok {
				return
			}
			sendCtx, cancel := context.WithTimeout(ctx, defaultSendTimeout)
			err := b.sender.Send(sendCtx, Reply{ChatID: chatID, Text: text})
			cancel()
			if err != nil {
				b.l.WithFields(logrus.Fields{
					"worker":  workerID,
					"chat_id": chatID,
				}).WithError(err).Warn("broadcast message not delivered")
			}
			resultCh <- err
		}
	}
}
