// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三类：
//   - HTTP指标：请求总数、耗时、并发数（由HTTP中间件记录）
//   - 业务指标：注册、登录、图书与评论的增删
//   - 基础设施指标：事件发布、熔断器状态
//
// 使用方式：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// 在InitMetrics之前调用任何辅助函数都是空操作，单元测试无需初始化指标。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/books/:bookId）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（秒）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// UsersRegisteredTotal 注册成功总数
	UsersRegisteredTotal prometheus.Counter

	// LoginAttemptsTotal 登录尝试总数，标签：result（success/failure）
	LoginAttemptsTotal *prometheus.CounterVec

	// BooksCreatedTotal 图书创建总数
	BooksCreatedTotal prometheus.Counter

	// BooksUpdatedTotal 图书更新总数
	BooksUpdatedTotal prometheus.Counter

	// BooksDeletedTotal 图书软删除总数
	BooksDeletedTotal prometheus.Counter

	// ReviewsCreatedTotal 评论创建总数
	ReviewsCreatedTotal prometheus.Counter

	// ReviewsDeletedTotal 评论软删除总数
	ReviewsDeletedTotal prometheus.Counter

	// EventsPublishedTotal 领域事件发布总数
	// 标签：routing_key、result（success/failure/rejected）
	EventsPublishedTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec
)

// InitMetrics 初始化所有指标并注册到默认Registry（可重复调用）
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 1ms、10ms、100ms、500ms、1s、5s、10s
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		UsersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "catalog_users_registered_total",
			Help: "注册成功总数",
		})

		LoginAttemptsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_login_attempts_total",
				Help: "登录尝试总数",
			},
			[]string{"result"},
		)

		BooksCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "catalog_books_created_total",
			Help: "图书创建总数",
		})

		BooksUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "catalog_books_updated_total",
			Help: "图书更新总数",
		})

		BooksDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "catalog_books_deleted_total",
			Help: "图书软删除总数",
		})

		ReviewsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "catalog_reviews_created_total",
			Help: "评论创建总数",
		})

		ReviewsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "catalog_reviews_deleted_total",
			Help: "评论软删除总数",
		})

		EventsPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_events_published_total",
				Help: "领域事件发布总数",
			},
			[]string{"routing_key", "result"},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)
	})
}

// IncCounter 递增Counter
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
