package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Connection pool
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
	DBQueryDuration    *prometheus.HistogramVec

	// Бизнес-метрики
	SlotsGenerated       *prometheus.CounterVec
	AvailabilityRequests *prometheus.CounterVec
	BookingsCreated      *prometheus.CounterVec
	AddressParseResults  *prometheus.CounterVec
}

// New регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном registry (для тестов)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		SlotsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_slots_generated_total",
			Help:        "Number of generated slots by availability",
			ConstLabels: constLabels,
		}, []string{"available"}),

		AvailabilityRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_requests_total",
			Help:        "Availability computations by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Created bookings by duration type",
			ConstLabels: constLabels,
		}, []string{"duration_type"}),

		AddressParseResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "address_parse_results_total",
			Help:        "Address parse results by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}
}

// Методы безопасны для nil: при выключенных метриках сервисы получают nil *Metrics

// ObserveAvailability учитывает результат расчёта доступности
func (m *Metrics) ObserveAvailability(outcome string, available, booked int) {
	if m == nil {
		return
	}
	m.AvailabilityRequests.WithLabelValues(outcome).Inc()
	m.SlotsGenerated.WithLabelValues("true").Add(float64(available))
	m.SlotsGenerated.WithLabelValues("false").Add(float64(booked))
}

// IncBookingCreated учитывает созданное бронирование
func (m *Metrics) IncBookingCreated(durationType string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(durationType).Inc()
}

// IncAddressParse учитывает результат распознавания адреса
func (m *Metrics) IncAddressParse(outcome string) {
	if m == nil {
		return
	}
	m.AddressParseResults.WithLabelValues(outcome).Inc()
}
