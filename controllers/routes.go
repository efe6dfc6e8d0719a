package controllers

import "github.com/gin-gonic/gin"

// RegisterOrderRoutes mounts the order and bill endpoints under group
func RegisterOrderRoutes(group *gin.RouterGroup, orders *OrderController, bills *BillController) {
	o := group.Group("/orders")
	{
		o.POST("", orders.CreateOrder)
		o.GET("", orders.ListOrders)
		o.GET("/statuses", orders.ListStatuses)
		o.GET("/:id", orders.GetOrder)
		o.PUT("/:id", orders.UpdateOrder)
		o.PATCH("/:id", orders.UpdateOrder)
		o.DELETE("/:id", orders.DeleteOrder)

		o.GET("/:id/bill", bills.GetOrderBill)
		o.POST("/:id/bill/export", bills.ExportOrderBill)
	}
}
