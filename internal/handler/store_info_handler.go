package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// 店舗の静的情報（サイズガイド・配送ポリシー）。
// 内容は固定で、DBには持たない。

type RingSize struct {
	Size          string `json:"size"`
	Diameter      string `json:"diameter"`
	Circumference string `json:"circumference"`
}

type NecklaceLength struct {
	Name        string `json:"name"`
	Length      string `json:"length"`
	Description string `json:"description"`
}

type BraceletSize struct {
	Size  string `json:"size"`
	Wrist string `json:"wrist"`
}

type SizeGuidesResponse struct {
	Rings struct {
		US []RingSize `json:"us"`
	} `json:"rings"`
	Necklaces struct {
		Lengths []NecklaceLength `json:"lengths"`
	} `json:"necklaces"`
	Bracelets struct {
		Sizes []BraceletSize `json:"sizes"`
	} `json:"bracelets"`
}

type ShippingInfoResponse struct {
	International struct {
		Cost          float64 `json:"cost"`
		Currency      string  `json:"currency"`
		EstimatedDays string  `json:"estimated_days"`
		Tracking      bool    `json:"tracking"`
		Insurance     bool    `json:"insurance"`
	} `json:"international"`
	Policies struct {
		Returns   string `json:"returns"`
		Warranty  string `json:"warranty"`
		Packaging string `json:"packaging"`
	} `json:"policies"`
}

type StoreInfoHandler struct {
	shippingFlatRate float64
	currency         string
}

// DI
func NewStoreInfoHandler(shippingFlatRate float64, currency string) *StoreInfoHandler {
	return &StoreInfoHandler{shippingFlatRate: shippingFlatRate, currency: currency}
}

func (h *StoreInfoHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/size-guides", h.sizeGuides)
	g.GET("/shipping-info", h.shippingInfo)
}

func (h *StoreInfoHandler) sizeGuides(c echo.Context) error {
	var out SizeGuidesResponse
	out.Rings.US = []RingSize{
		{Size: "4", Diameter: "14.9mm", Circumference: "46.8mm"},
		{Size: "5", Diameter: "15.7mm", Circumference: "49.3mm"},
		{Size: "6", Diameter: "16.5mm", Circumference: "51.9mm"},
		{Size: "7", Diameter: "17.3mm", Circumference: "54.4mm"},
		{Size: "8", Diameter: "18.2mm", Circumference: "57.0mm"},
		{Size: "9", Diameter: "19.0mm", Circumference: "59.5mm"},
		{Size: "10", Diameter: "19.8mm", Circumference: "62.1mm"},
	}
	out.Necklaces.Lengths = []NecklaceLength{
		{Name: "Choker", Length: "14-16 inches", Description: "Sits high on neck"},
		{Name: "Princess", Length: "17-19 inches", Description: "Classic length, sits above collarbone"},
		{Name: "Matinee", Length: "20-24 inches", Description: "Falls to top of bust"},
		{Name: "Opera", Length: "28-36 inches", Description: "Falls to mid-bust"},
		{Name: "Rope", Length: "37+ inches", Description: "Very long, can be doubled"},
	}
	out.Bracelets.Sizes = []BraceletSize{
		{Size: "Extra Small", Wrist: "5.5-6 inches"},
		{Size: "Small", Wrist: "6-6.5 inches"},
		{Size: "Medium", Wrist: "6.5-7 inches"},
		{Size: "Large", Wrist: "7-7.5 inches"},
		{Size: "Extra Large", Wrist: "7.5-8 inches"},
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StoreInfoHandler) shippingInfo(c echo.Context) error {
	var out ShippingInfoResponse
	out.International.Cost = h.shippingFlatRate
	out.International.Currency = h.currency
	out.International.EstimatedDays = "5-7 business days"
	out.International.Tracking = true
	out.International.Insurance = true
	out.Policies.Returns = "30-day return policy"
	out.Policies.Warranty = "Lifetime warranty on craftsmanship"
	out.Policies.Packaging = "Luxury gift packaging included"
	return c.JSON(http.StatusOK, out)
}
