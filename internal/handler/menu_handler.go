package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"restaurant-admin-service/internal/imagehost"
	"restaurant-admin-service/internal/middleware"
	"restaurant-admin-service/internal/model"
	"restaurant-admin-service/pkg/database"
	"restaurant-admin-service/pkg/logger"
	"restaurant-admin-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var imageClient *imagehost.Client

// SetImageHostClient installs the client used for menu image uploads
func SetImageHostClient(client *imagehost.Client) {
	imageClient = client
}

// MenuItemRequest defines the structure for menu item creation requests.
// Price arrives as text from the form and is parsed server-side.
type MenuItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
}

// ListMenuItems handles retrieving all menu items for the caller's restaurant
func ListMenuItems(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMenuOperation("list")

	restaurantID, ok := middleware.GetRestaurantIDFromContext(c)
	if !ok {
		log.Error("Restaurant not resolved for menu list")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no restaurant linked to this account"})
	}

	defer prometheus.TrackDBOperation("select")(time.Now())

	var items []model.MenuItem
	result := database.GetDB().
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC").
		Find(&items)
	if result.Error != nil {
		log.Error("Failed to list menu items",
			zap.Uint("restaurant_id", restaurantID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve menu items"})
	}

	log.Info("Menu items retrieved", zap.Uint("restaurant_id", restaurantID), zap.Int("count", len(items)))
	return c.JSON(http.StatusOK, items)
}

// UploadMenuImage handles an explicit image upload ahead of form submission.
// Size and MIME checks run before any call to the external host.
func UploadMenuImage(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMenuOperation("upload_image")

	if _, ok := middleware.GetRestaurantIDFromContext(c); !ok {
		log.Error("Restaurant not resolved for image upload")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no restaurant linked to this account"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		log.Warn("Image upload without file part", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file is required"})
	}

	url, err := uploadImage(c, fileHeader)
	if err != nil {
		return writeUploadError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"url": url})
}

// CreateMenuItem handles inserting a menu item. A multipart request may carry
// an image file, which is uploaded to the external host before the insert;
// when that upload fails the insert does not proceed.
func CreateMenuItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMenuOperation("create")

	restaurantID, ok := middleware.GetRestaurantIDFromContext(c)
	if !ok {
		log.Error("Restaurant not resolved for menu item creation")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no restaurant linked to this account"})
	}

	var req MenuItemRequest
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	multipartForm := strings.HasPrefix(contentType, echo.MIMEMultipartForm)
	if multipartForm {
		req = MenuItemRequest{
			Name:        c.FormValue("name"),
			Description: c.FormValue("description"),
			Price:       c.FormValue("price"),
			Category:    c.FormValue("category"),
			ImageURL:    c.FormValue("image_url"),
		}
	} else {
		if err := c.Bind(&req); err != nil {
			log.Error("Invalid menu item request data", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
		}
	}

	if req.Name == "" {
		log.Warn("Menu item creation missing name")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil {
		log.Warn("Invalid menu item price", zap.String("price", req.Price))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be a number"})
	}

	imageURL := req.ImageURL
	if multipartForm {
		if fileHeader, err := c.FormFile("image"); err == nil {
			// Image selected but never explicitly uploaded: upload inline
			// before the insert. A failed upload aborts the whole request.
			url, err := uploadImage(c, fileHeader)
			if err != nil {
				return writeUploadError(c, err)
			}
			imageURL = url
		}
	}

	item := model.MenuItem{
		Name:         req.Name,
		Description:  req.Description,
		Price:        price,
		Category:     req.Category,
		ImageURL:     imageURL,
		IsAvailable:  true,
		RestaurantID: restaurantID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	result := database.GetDB().Create(&item)
	if result.Error != nil {
		log.Error("Failed to create menu item",
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create menu item"})
	}

	log.Info("Menu item created",
		zap.Uint("menu_item_id", item.ID),
		zap.Uint("restaurant_id", restaurantID),
		zap.String("name", item.Name),
		zap.Float64("price", item.Price))
	return c.JSON(http.StatusCreated, item)
}

// Upload errors that are the caller's fault rather than the host's.
var (
	errImageUnreadable    = errors.New("failed to read image file")
	errUploadUnconfigured = errors.New("image uploads are not configured")
)

// uploadImage validates the file and posts it to the external image host.
// Validation runs before any network call.
func uploadImage(c echo.Context, fileHeader *multipart.FileHeader) (string, error) {
	log := logger.FromContext(c)

	if err := imagehost.Validate(fileHeader.Header.Get(echo.HeaderContentType), fileHeader.Size); err != nil {
		if errors.Is(err, imagehost.ErrFileTooLarge) {
			log.Warn("Image rejected: too large",
				zap.String("filename", fileHeader.Filename),
				zap.Int64("size", fileHeader.Size))
			prometheus.RecordImageUploadReject("size")
		} else {
			log.Warn("Image rejected: not an image",
				zap.String("filename", fileHeader.Filename),
				zap.String("content_type", fileHeader.Header.Get(echo.HeaderContentType)))
			prometheus.RecordImageUploadReject("mime")
		}
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return "", errImageUnreadable
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("Failed to read uploaded file", zap.Error(err))
		return "", errImageUnreadable
	}

	if imageClient == nil {
		log.Error("Image host client is not configured")
		prometheus.RecordImageUpload("failure")
		return "", errUploadUnconfigured
	}

	start := time.Now()
	url, err := imageClient.Upload(data)
	prometheus.ImageUploadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("Image upload failed",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err))
		prometheus.RecordImageUpload("failure")
		return "", err
	}

	log.Info("Image uploaded",
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
		zap.String("url", url))
	prometheus.RecordImageUpload("success")
	return url, nil
}

// writeUploadError maps an upload failure onto the HTTP response
func writeUploadError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, imagehost.ErrFileTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": err.Error()})
	case errors.Is(err, imagehost.ErrNotAnImage), errors.Is(err, errImageUnreadable):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, errUploadUnconfigured):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "image upload failed: " + err.Error()})
	}
}
