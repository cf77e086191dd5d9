package api

import (
	"net/http"

	"github.com/Domenick1991/flightdeals/internal/domain"
	"github.com/Domenick1991/flightdeals/internal/logger"
	"github.com/Domenick1991/flightdeals/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/jszwec/csvutil"
)

// maxFilterLen bounds each query filter value.
const maxFilterLen = 64

type FlightHandler struct {
	service flights.FlightUseCase
	log     logger.Logger
}

type flightCSVRow struct {
	ID            string `csv:"id"`
	From          string `csv:"from"`
	To            string `csv:"to"`
	FromCity      string `csv:"from_city"`
	ToCity        string `csv:"to_city"`
	Airline       string `csv:"airline"`
	Price         int    `csv:"price"`
	OriginalPrice int    `csv:"original_price"`
	Savings       int    `csv:"savings"`
	DealQuality   string `csv:"deal_quality"`
	Duration      string `csv:"duration"`
	Stops         int    `csv:"stops"`
	DepartureTime string `csv:"departure_time"`
	ArrivalTime   string `csv:"arrival_time"`
}

func NewFlightHandler(service flights.FlightUseCase, log logger.Logger) *FlightHandler {
	return &FlightHandler{service: service, log: log}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/summary", h.summary)
	router.GET("/export.csv", h.export)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flights, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, "list flights", err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id := c.Param("id")
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get flight", err)
		return
	}
	if flight == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.fail(c, "summarize flights", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *FlightHandler) export(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flights, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, "export flights", err)
		return
	}

	rows := make([]flightCSVRow, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, flightCSVRow{
			ID:            f.ID,
			From:          f.OriginCode,
			To:            f.DestCode,
			FromCity:      f.OriginCity,
			ToCity:        f.DestCity,
			Airline:       f.Airline,
			Price:         f.Price,
			OriginalPrice: f.OriginalPrice,
			Savings:       f.Savings,
			DealQuality:   string(f.DealQuality),
			Duration:      f.Duration,
			Stops:         f.Stops,
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
		})
	}
	data, err := csvutil.Marshal(rows)
	if err != nil {
		h.fail(c, "encode flights csv", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="flights.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *FlightHandler) fail(c *gin.Context, op string, err error) {
	h.log.Error(op+" failed", "error", err, "path", c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func filterFromQuery(c *gin.Context) (domain.FlightFilter, error) {
	filter := domain.FlightFilter{
		From:        c.Query("from"),
		To:          c.Query("to"),
		DealQuality: c.Query("dealQuality"),
	}
	for _, v := range []string{filter.From, filter.To, filter.DealQuality} {
		if len(v) > maxFilterLen {
			return domain.FlightFilter{}, domain.ErrInvalidFilter
		}
	}
	return filter, nil
}
