package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// ReceiptServiceName is the fully-qualified name of the ReceiptService service.
const ReceiptServiceName = "billsplitter.v1.ReceiptService"

// ReceiptService procedure paths.
const (
	ReceiptServiceScanReceiptProcedure = "/" + ReceiptServiceName + "/ScanReceipt"
	ReceiptServiceGetReviewProcedure   = "/" + ReceiptServiceName + "/GetReview"
	ReceiptServiceConfirmItemProcedure = "/" + ReceiptServiceName + "/ConfirmItem"
	ReceiptServiceSkipItemProcedure    = "/" + ReceiptServiceName + "/SkipItem"
	ReceiptServiceCloseReviewProcedure = "/" + ReceiptServiceName + "/CloseReview"
)

// ReceiptServiceHandler is implemented by the server side of ReceiptService.
type ReceiptServiceHandler interface {
	ScanReceipt(context.Context, *connect.Request[ScanReceiptRequest]) (*connect.Response[ReviewResponse], error)
	GetReview(context.Context, *connect.Request[GetReviewRequest]) (*connect.Response[ReviewResponse], error)
	ConfirmItem(context.Context, *connect.Request[ConfirmItemRequest]) (*connect.Response[ConfirmItemResponse], error)
	SkipItem(context.Context, *connect.Request[SkipItemRequest]) (*connect.Response[ReviewResponse], error)
	CloseReview(context.Context, *connect.Request[CloseReviewRequest]) (*connect.Response[ReviewResponse], error)
}

// NewReceiptServiceHandler returns the mount path and handler for svc.
func NewReceiptServiceHandler(svc ReceiptServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + ReceiptServiceName + "/", router{
		ReceiptServiceScanReceiptProcedure: unaryHandler(ReceiptServiceScanReceiptProcedure, svc.ScanReceipt, opts),
		ReceiptServiceGetReviewProcedure:   unaryHandler(ReceiptServiceGetReviewProcedure, svc.GetReview, opts),
		ReceiptServiceConfirmItemProcedure: unaryHandler(ReceiptServiceConfirmItemProcedure, svc.ConfirmItem, opts),
		ReceiptServiceSkipItemProcedure:    unaryHandler(ReceiptServiceSkipItemProcedure, svc.SkipItem, opts),
		ReceiptServiceCloseReviewProcedure: unaryHandler(ReceiptServiceCloseReviewProcedure, svc.CloseReview, opts),
	}
}

// ReceiptServiceClient is a client for ReceiptService.
type ReceiptServiceClient interface {
	ScanReceipt(context.Context, *connect.Request[ScanReceiptRequest]) (*connect.Response[ReviewResponse], error)
	GetReview(context.Context, *connect.Request[GetReviewRequest]) (*connect.Response[ReviewResponse], error)
	ConfirmItem(context.Context, *connect.Request[ConfirmItemRequest]) (*connect.Response[ConfirmItemResponse], error)
	SkipItem(context.Context, *connect.Request[SkipItemRequest]) (*connect.Response[ReviewResponse], error)
	CloseReview(context.Context, *connect.Request[CloseReviewRequest]) (*connect.Response[ReviewResponse], error)
}

// NewReceiptServiceClient constructs a client for the ReceiptService served at baseURL.
func NewReceiptServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReceiptServiceClient {
	return &receiptServiceClient{
		scanReceipt: unaryClient[ScanReceiptRequest, ReviewResponse](httpClient, baseURL, ReceiptServiceScanReceiptProcedure, opts),
		getReview:   unaryClient[GetReviewRequest, ReviewResponse](httpClient, baseURL, ReceiptServiceGetReviewProcedure, opts),
		confirmItem: unaryClient[ConfirmItemRequest, ConfirmItemResponse](httpClient, baseURL, ReceiptServiceConfirmItemProcedure, opts),
		skipItem:    unaryClient[SkipItemRequest, ReviewResponse](httpClient, baseURL, ReceiptServiceSkipItemProcedure, opts),
		closeReview: unaryClient[CloseReviewRequest, ReviewResponse](httpClient, baseURL, ReceiptServiceCloseReviewProcedure, opts),
	}
}

type receiptServiceClient struct {
	scanReceipt *connect.Client[ScanReceiptRequest, ReviewResponse]
	getReview   *connect.Client[GetReviewRequest, ReviewResponse]
	confirmItem *connect.Client[ConfirmItemRequest, ConfirmItemResponse]
	skipItem    *connect.Client[SkipItemRequest, ReviewResponse]
	closeReview *connect.Client[CloseReviewRequest, ReviewResponse]
}

func (c *receiptServiceClient) ScanReceipt(ctx context.Context, req *connect.Request[ScanReceiptRequest]) (*connect.Response[ReviewResponse], error) {
	return c.scanReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) GetReview(ctx context.Context, req *connect.Request[GetReviewRequest]) (*connect.Response[ReviewResponse], error) {
	return c.getReview.CallUnary(ctx, req)
}

func (c *receiptServiceClient) ConfirmItem(ctx context.Context, req *connect.Request[ConfirmItemRequest]) (*connect.Response[ConfirmItemResponse], error) {
	return c.confirmItem.CallUnary(ctx, req)
}

func (c *receiptServiceClient) SkipItem(ctx context.Context, req *connect.Request[SkipItemRequest]) (*connect.Response[ReviewResponse], error) {
	return c.skipItem.CallUnary(ctx, req)
}

func (c *receiptServiceClient) CloseReview(ctx context.Context, req *connect.Request[CloseReviewRequest]) (*connect.Response[ReviewResponse], error) {
	return c.closeReview.CallUnary(ctx, req)
}
