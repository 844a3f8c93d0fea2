package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/lessonlab/code-runner/internal/files"
	"github.com/lessonlab/code-runner/internal/mappers"
	"github.com/lessonlab/code-runner/internal/repository/models"
	"github.com/lessonlab/code-runner/internal/runner"
)

const (
	reqQueue  = "exec-req"
	respQueue = "exec-resp"
)

type RabbitMqHandlerConfig struct {
	Login        string
	Password     string
	Host         string
	Port         int
	WorkersCount int
}

// RabbitMQHandler is the queued transport: the grading pipeline publishes
// execution tasks to the request queue and reads outcomes from the response
// queue. The same runner serves both this and the HTTP path.
type RabbitMQHandler struct {
	cfg          RabbitMqHandlerConfig
	runner       runner.Runner
	storage      *files.FileStorage
	conn         *amqp.Connection
	consumerChan *amqp.Channel
	producerChan *amqp.Channel
	tasksChan    chan models.TaskRequest
	wg           sync.WaitGroup
	listenerWg   sync.WaitGroup
	workersOnce  sync.Once
	workerCount  atomic.Int32
	closed       atomic.Bool
}

func NewRabbitMQHandler(cfg RabbitMqHandlerConfig, r runner.Runner, storage *files.FileStorage) (*RabbitMQHandler, error) {
	return &RabbitMQHandler{
		cfg:       cfg,
		runner:    r,
		storage:   storage,
		tasksChan: make(chan models.TaskRequest, cfg.WorkersCount),
	}, nil
}

func (r *RabbitMQHandler) Start() error {
	if err := r.connect(); err != nil {
		return err
	}
	if err := r.startConsumer(); err != nil {
		return errors.Wrap(err, "failed to start consumer")
	}
	if err := r.startProducer(); err != nil {
		return errors.Wrap(err, "failed to start producer")
	}
	r.startWorkers()
	return nil
}

// startWorkers spawns the worker pool exactly once; Start re-runs on every
// reconnect and the pool outlives individual connections, draining the same
// task channel until Close.
func (r *RabbitMQHandler) startWorkers() {
	r.workersOnce.Do(func() {
		for i := 0; i < r.cfg.WorkersCount; i++ {
			r.wg.Add(1)
			r.workerCount.Add(1)
			go r.worker()
		}
	})
}

// Close stops consuming before draining in-flight tasks: closing the
// connection ends the delivery stream, then the task channel is closed so
// workers finish what they already picked up.
func (r *RabbitMQHandler) Close() {
	r.closed.Store(true)
	if r.conn != nil {
		r.conn.Close()
	}
	r.listenerWg.Wait()
	close(r.tasksChan)
	r.wg.Wait()
}

func (r *RabbitMQHandler) connect() error {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d", r.cfg.Login, r.cfg.Password, r.cfg.Host, r.cfg.Port)
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	r.conn = conn

	errChan := make(chan *amqp.Error)
	conn.NotifyClose(errChan)
	go func() {
		<-errChan
		if r.closed.Load() {
			return
		}
		for {
			time.Sleep(time.Second * 15)
			if err := r.Start(); err == nil {
				return
			}
		}
	}()
	return nil
}

func (r *RabbitMQHandler) startConsumer() error {
	channel, err := r.conn.Channel()
	if err != nil {
		return err
	}
	queue, err := channel.QueueDeclare(reqQueue, false, false, false, false, nil)
	if err != nil {
		return err
	}
	del, err := channel.Consume(queue.Name, "", true, false, false, false, nil)
	if err != nil {
		return err
	}

	r.consumerChan = channel
	r.listenerWg.Add(1)
	go r.listener(del)
	return nil
}

func (r *RabbitMQHandler) startProducer() error {
	channel, err := r.conn.Channel()
	if err != nil {
		return err
	}
	if _, err := channel.QueueDeclare(respQueue, false, false, false, false, nil); err != nil {
		return err
	}
	r.producerChan = channel
	return nil
}

func (r *RabbitMQHandler) listener(taskChan <-chan amqp.Delivery) {
	defer r.listenerWg.Done()
	for data := range taskChan {
		var task models.TaskRequest
		if err := json.Unmarshal(data.Body, &task); err != nil {
			slog.Error("invalid task message", "message", string(data.Body))
			continue
		}
		if r.closed.Load() {
			return
		}
		r.tasksChan <- task
	}
}

func (r *RabbitMQHandler) worker() {
	defer r.wg.Done()

	for task := range r.tasksChan {
		if err := r.resolveCode(&task); err != nil {
			slog.Error("failed to fetch task code", "task", task.Id, "error", err)
			r.send(&models.TaskResponse{Id: task.Id, Error: err.Error()})
			continue
		}

		outcome, err := r.runner.Run(mappers.TaskToExecutionRequest(&task))
		if err != nil {
			slog.Error("task execution failed", "task", task.Id, "error", err)
			r.send(&models.TaskResponse{Id: task.Id, Error: err.Error()})
			continue
		}
		r.send(mappers.OutcomeToTaskResponse(&task, outcome))
	}
}

// resolveCode loads the referenced exercise object when the task does not
// inline its source.
func (r *RabbitMQHandler) resolveCode(task *models.TaskRequest) error {
	if task.Code != "" || task.CodeFile == "" {
		return nil
	}
	if r.storage == nil {
		return errors.New("no object storage configured for code_file tasks")
	}
	code, err := r.storage.GetText(context.Background(), task.CodeFile)
	if err != nil {
		return errors.Wrapf(err, "failed to fetch %s", task.CodeFile)
	}
	task.Code = code
	return nil
}

func (r *RabbitMQHandler) send(data *models.TaskResponse) {
	if r.closed.Load() {
		return
	}
	body, _ := json.Marshal(data)
	err := r.producerChan.Publish("", respQueue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		slog.Error("failed to send response to queue", "error", err)
	}
}
