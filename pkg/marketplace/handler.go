package marketplace

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"iotmarket/pkg/identity"
	"iotmarket/pkg/response"
)

type MarketplaceHandler struct {
	service MarketplaceService
}

func NewMarketplaceHandler(service MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{service: service}
}

func (h *MarketplaceHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/marketplace/initialize", h.initialize)

	router.POST("/assets", h.registerAsset)
	router.PUT("/assets/:id", h.updateAsset)
	router.GET("/assets/:id", h.getAsset)
	router.GET("/assets", h.availableAssetsByType)
	router.GET("/owners/:addr/assets", h.assetsByOwner)

	router.POST("/leases", h.createLease)
	router.GET("/leases/:id", h.getLease)
	router.POST("/leases/:id/payment", h.processPayment)
	router.POST("/leases/:id/end", h.endLease)
	router.POST("/leases/:id/dispute", h.raiseDispute)
	router.POST("/leases/:id/resolve", h.resolveDispute)
	router.GET("/lessees/:addr/leases", h.leasesByLessee)

	router.POST("/assets/:id/reviews", h.submitReview)
	router.GET("/reviews/:id", h.getReview)

	router.GET("/stats", h.getStats)
}

// sendError maps the engine's error taxonomy onto HTTP status codes.
func sendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrAuthentication):
		response.SendAPIError(c, http.StatusUnauthorized, "authentication", err.Error())
	case errors.Is(err, ErrNotAuthorized):
		response.SendAPIError(c, http.StatusForbidden, "authorization", err.Error())
	case errors.Is(err, ErrAssetNotFound), errors.Is(err, ErrLeaseNotFound), errors.Is(err, ErrReviewNotFound):
		response.SendAPIError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrInvalidRating), errors.Is(err, ErrInvalidRefundPercentage), errors.Is(err, ErrInvalidPaymentModel):
		response.SendAPIError(c, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, ErrAssetUnavailable), errors.Is(err, ErrLeaseNotActive),
		errors.Is(err, ErrLeaseAlreadyPaid), errors.Is(err, ErrNoDisputeRaised):
		response.SendAPIError(c, http.StatusConflict, "invalid_state", err.Error())
	default:
		response.SendAPIError(c, http.StatusInternalServerError, "internal", err.Error())
	}
}

func parseID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		response.SendAPIError(c, http.StatusBadRequest, "validation", "invalid id")
		return 0, false
	}
	return id, true
}

// @Summary      Initialize the marketplace
// @Description  Writes zeroed stats and counters; re-invocation resets all marketplace state
// @Tags         marketplace
// @Produce      json
// @Success      200  {object}  response.APIResponse "Marketplace initialized"
// @Failure      500  {object}  response.APIResponse "Ledger failure"
// @Router       /marketplace/initialize [post]
func (h *MarketplaceHandler) initialize(c *gin.Context) {
	if err := h.service.Initialize(c.Request.Context()); err != nil {
		sendError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "marketplace initialized", nil)
}

type registerAssetRequest struct {
	Owner            string `json:"owner" binding:"required"`
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	AssetType        string `json:"asset_type" binding:"required"`
	Location         string `json:"location"`
	Price            uint64 `json:"price"`
	PaymentModel     string `json:"payment_model" binding:"required"`
	QualityGuarantee string `json:"quality_guarantee"`
}

// @Summary      Register an asset
// @Description  Lists a new asset for lease; the caller must authenticate as the owner
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request body registerAssetRequest true "Asset registration request"
// @Success      201  {object}  response.APIResponse "Asset registered; data holds the new id"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      401  {object}  response.APIResponse "Authentication failed"
// @Router       /assets [post]
func (h *MarketplaceHandler) registerAsset(c *gin.Context) {
	var req registerAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIError(c, http.StatusBadRequest, "validation", "invalid request payload")
		return
	}

	id, err := h.service.RegisterAsset(c.Request.Context(), req.Owner, RegisterAssetInput{
		Title:            req.Title,
		Description:      req.Description,
		AssetType:        req.AssetType,
		Location:         req.Location,
		Price:            req.Price,
		PaymentModel:     PaymentModel(req.PaymentModel),
		QualityGuarantee: req.QualityGuarantee,
	})
	if err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "asset registered", gin.H{"asset_id": id})
}

type updateAssetRequest struct {
	Owner            string `json:"owner" binding:"required"`
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	Price            uint64 `json:"price"`
	IsAvailable      bool   `json:"is_available"`
	QualityGuarantee string `json:"quality_guarantee"`
}

// @Summary      Update an asset
// @Description  Overwrites the mutable fields of an asset; only its registered owner may update it
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Asset ID"
// @Param        request body updateAssetRequest true "Asset update request"
// @Success      200  {object}  response.APIResponse "Asset updated"
// @Failure      403  {object}  response.APIResponse "Caller is not the owner"
// @Failure      404  {object}  response.APIResponse "Asset not found"
// @Router       /assets/{id} [put]
func (h *MarketplaceHandler) updateAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIError(c, http.StatusBadRequest, "validation", "invalid request payload")
		return
	}

	err := h.service.UpdateAsset(c.Request.Context(), req.Owner, id, UpdateAssetInput{
		Title:            req.Title,
		Description:      req.Description,
		Price:            req.Price,
		IsAvailable:      req.IsAvailable,
		QualityGuarantee: req.QualityGuarantee,
	})
	if err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "asset updated", nil)
}

type createLeaseRequest struct {
	Lessee          string `json:"lessee" binding:"required"`
	AssetID         uint64 `json:"asset_id" binding:"required"`
	DurationSeconds uint64 `json:"duration_seconds" binding:"required"`
	AccessKey       string `json:"access_key"`
}

// @Summary      Create a lease
// @Description  Leases an available asset for the requested duration; cost follows the asset's payment model
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        request body createLeaseRequest true "Lease creation request"
// @Success      201  {object}  response.APIResponse "Lease created; data holds the new id"
// @Failure      404  {object}  response.APIResponse "Asset not found"
// @Failure      409  {object}  response.APIResponse "Asset is not available"
// @Router       /leases [post]
func (h *MarketplaceHandler) createLease(c *gin.Context) {
	var req createLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIError(c, http.StatusBadRequest, "validation", "invalid request payload")
		return
	}

	id, err := h.service.CreateLease(c.Request.Context(), req.Lessee, req.AssetID, req.DurationSeconds, req.AccessKey)
	if err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "lease created", gin.H{"lease_id": id})
}

type processPaymentRequest struct {
	Payer string `json:"payer" binding:"required"`
}

// @Summary      Process a lease payment
// @Description  Marks an active, unpaid lease as paid and adds its cost to total revenue
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Lease ID"
// @Param        request body processPaymentRequest true "Payment request"
// @Success      200  {object}  response.APIResponse "Payment recorded"
// @Failure      403  {object}  response.APIResponse "Caller is not the lessee"
// @Failure      409  {object}  response.APIResponse "Lease inactive or already paid"
// @Router       /leases/{id}/payment [post]
func (h *MarketplaceHandler) processPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req processPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIError(c, http.StatusBadRequest, "validation", "invalid request payload")
		return
	}

	if err := h.service.ProcessPayment(c.Request.Context(), req.Payer, id); err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "payment recorded", nil)
}

type leasePartyRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// @Summary      End a lease
// @Description  Deactivates an active lease and restores asset availability; lessor or lessee only
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Lease ID"
// @Param        request body leasePartyRequest true "Terminating party"
// @Success      200  {object}  response.APIResponse "Lease ended"
// @Failure      403  {object}  response.APIResponse "Caller is not a lease party"
// @Failure      409  {object}  response.APIResponse "Lease is not active"
// @Router       /leases/{id}/end [post]
func (h *MarketplaceHandler) endLease(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req leasePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIError(c, http.StatusBadRequest, "validation", "invalid request payload")
		return
	}

	if err := h.service.EndLease(c.Request.Context(), req.Caller, id); err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "lease ended", nil)
}

// @Summary      Raise a dispute
// @Description  Flags a disagreement on an active lease; lessor or lessee only
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Lease ID"
// @Param        request body leasePartyRequest true "Disputing party"
// @Success      200  {object}  response.APIResponse "Dispute raised"
// @Failure      403  {object}  response.APIResponse "Caller is not a lease party"
// @Failure      409  {object}  response.APIResponse "Lease is not active"
// @Router       /leases/{id}/dispute [post]
func (h *MarketplaceHandler) raiseDispute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req leasePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIError(c, http.StatusBadRequest, "validation", "invalid request payload")
		return
	}

	if err := h.service.RaiseDispute(c.Request.Context(), req.Caller, id); err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "dispute raised", nil)
}

type resolveDisputeRequest struct {
	Admin            string `json:"admin" binding:"required"`
	RefundPercentage uint64 `json:"refund_percentage"`
}

// @Summary      Resolve a dispute
// @Description  Deactivates a disputed lease and refunds a percentage of its cost to the lessee
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Lease ID"
// @Param        request body resolveDisputeRequest true "Resolution request"
// @Success      200  {object}  response.APIResponse "Dispute resolved"
// @Failure      400  {object}  response.APIResponse "Refund percentage out of range"
// @Failure      409  {object}  response.APIResponse "No dispute raised"
// @Router       /leases/{id}/resolve [post]
func (h *MarketplaceHandler) resolveDispute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req resolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIError(c, http.StatusBadRequest, "validation", "invalid request payload")
		return
	}

	if err := h.service.ResolveDispute(c.Request.Context(), req.Admin, id, req.RefundPercentage); err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "dispute resolved", nil)
}

type submitReviewRequest struct {
	Reviewer string `json:"reviewer" binding:"required"`
	Rating   uint64 `json:"rating"`
	Comment  string `json:"comment"`
}

// @Summary      Submit a review
// @Description  Appends a review and overwrites the asset's rating with the new value
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Asset ID"
// @Param        request body submitReviewRequest true "Review request"
// @Success      201  {object}  response.APIResponse "Review submitted; data holds the new id"
// @Failure      400  {object}  response.APIResponse "Rating out of range"
// @Failure      404  {object}  response.APIResponse "Asset not found"
// @Router       /assets/{id}/reviews [post]
func (h *MarketplaceHandler) submitReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIError(c, http.StatusBadRequest, "validation", "invalid request payload")
		return
	}

	reviewID, err := h.service.SubmitReview(c.Request.Context(), req.Reviewer, id, req.Rating, req.Comment)
	if err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "review submitted", gin.H{"review_id": reviewID})
}

// @Summary      Get an asset
// @Tags         assets
// @Produce      json
// @Param        id   path      int  true  "Asset ID"
// @Success      200  {object}  response.APIResponse{data=Asset} "Asset"
// @Failure      404  {object}  response.APIResponse "Asset not found"
// @Router       /assets/{id} [get]
func (h *MarketplaceHandler) getAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	asset, err := h.service.GetAsset(c.Request.Context(), id)
	if err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "asset fetched", asset)
}

// @Summary      Get a lease
// @Tags         leases
// @Produce      json
// @Param        id   path      int  true  "Lease ID"
// @Success      200  {object}  response.APIResponse{data=Lease} "Lease"
// @Failure      404  {object}  response.APIResponse "Lease not found"
// @Router       /leases/{id} [get]
func (h *MarketplaceHandler) getLease(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	lease, err := h.service.GetLease(c.Request.Context(), id)
	if err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "lease fetched", lease)
}

// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        id   path      int  true  "Review ID"
// @Success      200  {object}  response.APIResponse{data=Review} "Review"
// @Failure      404  {object}  response.APIResponse "Review not found"
// @Router       /reviews/{id} [get]
func (h *MarketplaceHandler) getReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	review, err := h.service.GetReview(c.Request.Context(), id)
	if err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "review fetched", review)
}

// @Summary      List assets by owner
// @Tags         assets
// @Produce      json
// @Param        addr path      string  true  "Owner identity"
// @Success      200  {object}  response.APIResponse{data=[]Asset} "Assets in ascending id order"
// @Router       /owners/{addr}/assets [get]
func (h *MarketplaceHandler) assetsByOwner(c *gin.Context) {
	owner := c.Param("addr")

	assets, err := h.service.GetAssetsByOwner(c.Request.Context(), owner)
	if err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "assets listed", assets)
}

// @Summary      List active leases by lessee
// @Tags         leases
// @Produce      json
// @Param        addr path      string  true  "Lessee identity"
// @Success      200  {object}  response.APIResponse{data=[]Lease} "Active leases in ascending id order"
// @Router       /lessees/{addr}/leases [get]
func (h *MarketplaceHandler) leasesByLessee(c *gin.Context) {
	lessee := c.Param("addr")

	leases, err := h.service.GetLeasesByLessee(c.Request.Context(), lessee)
	if err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "leases listed", leases)
}

// @Summary      List available assets by type
// @Tags         assets
// @Produce      json
// @Param        type query     string  true  "Asset type"
// @Success      200  {object}  response.APIResponse{data=[]Asset} "Available assets in ascending id order"
// @Router       /assets [get]
func (h *MarketplaceHandler) availableAssetsByType(c *gin.Context) {
	assetType := c.Query("type")
	if assetType == "" {
		response.SendAPIError(c, http.StatusBadRequest, "validation", "type query parameter is required")
		return
	}

	assets, err := h.service.GetAvailableAssetsByType(c.Request.Context(), assetType)
	if err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "available assets listed", assets)
}

// @Summary      Get aggregate marketplace stats
// @Tags         marketplace
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=AssetStats} "Aggregate stats"
// @Router       /stats [get]
func (h *MarketplaceHandler) getStats(c *gin.Context) {
	stats, err := h.service.GetAssetStats(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "stats fetched", stats)
}
