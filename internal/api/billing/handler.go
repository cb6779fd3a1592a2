package billing

import (
	"errors"
	"math"
	"net/http"

	"inkserie-app/config"
	"inkserie-app/database"
	"inkserie-app/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"gorm.io/gorm"
)

// ------------------------------
// POST /api/series/:id/checkout  (landing page "Comprar Agora")
// ------------------------------
func CheckoutSerie(c *gin.Context) {
	id := c.Param("id")

	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	var s catalog.Serie
	if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Serie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load serie"})
		return
	}

	if s.Status != catalog.StatusPublished {
		c.JSON(http.StatusForbidden, gin.H{"error": "Serie is not for sale"})
		return
	}
	if s.Preco <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Serie has no price"})
		return
	}

	appURL := config.APP_URL

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(appURL + "/series/" + s.ID + "?purchased=1"),
		CancelURL:  stripe.String(appURL + "/series/" + s.ID + "?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("brl"),
					UnitAmount: stripe.Int64(int64(math.Round(s.Preco * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(s.Titulo),
					},
				},
			},
		},
		Metadata: map[string]string{
			"serie_id": s.ID,
		},
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": sess.URL})
}
