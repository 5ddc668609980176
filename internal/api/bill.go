package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// BillServiceName is the fully-qualified name of the BillService service.
const BillServiceName = "billsplitter.v1.BillService"

// BillService procedure paths.
const (
	BillServiceStartBillProcedure         = "/" + BillServiceName + "/StartBill"
	BillServiceGetBillProcedure           = "/" + BillServiceName + "/GetBill"
	BillServiceAddParticipantProcedure    = "/" + BillServiceName + "/AddParticipant"
	BillServiceRemoveParticipantProcedure = "/" + BillServiceName + "/RemoveParticipant"
	BillServiceUpdateSettingsProcedure    = "/" + BillServiceName + "/UpdateSettings"
	BillServiceAddItemProcedure           = "/" + BillServiceName + "/AddItem"
	BillServiceUpdateItemProcedure        = "/" + BillServiceName + "/UpdateItem"
	BillServiceRemoveItemProcedure        = "/" + BillServiceName + "/RemoveItem"
	BillServiceResetBillProcedure         = "/" + BillServiceName + "/ResetBill"
	BillServiceGetSummaryProcedure        = "/" + BillServiceName + "/GetSummary"
)

// BillServiceHandler is implemented by the server side of BillService.
type BillServiceHandler interface {
	StartBill(context.Context, *connect.Request[StartBillRequest]) (*connect.Response[BillResponse], error)
	GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[BillResponse], error)
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error)
	UpdateSettings(context.Context, *connect.Request[UpdateSettingsRequest]) (*connect.Response[BillResponse], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[ItemResponse], error)
	UpdateItem(context.Context, *connect.Request[UpdateItemRequest]) (*connect.Response[ItemResponse], error)
	RemoveItem(context.Context, *connect.Request[RemoveItemRequest]) (*connect.Response[RemoveItemResponse], error)
	ResetBill(context.Context, *connect.Request[ResetBillRequest]) (*connect.Response[BillResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
}

// NewBillServiceHandler returns the mount path and handler for svc.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + BillServiceName + "/", router{
		BillServiceStartBillProcedure:         unaryHandler(BillServiceStartBillProcedure, svc.StartBill, opts),
		BillServiceGetBillProcedure:           unaryHandler(BillServiceGetBillProcedure, svc.GetBill, opts),
		BillServiceAddParticipantProcedure:    unaryHandler(BillServiceAddParticipantProcedure, svc.AddParticipant, opts),
		BillServiceRemoveParticipantProcedure: unaryHandler(BillServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts),
		BillServiceUpdateSettingsProcedure:    unaryHandler(BillServiceUpdateSettingsProcedure, svc.UpdateSettings, opts),
		BillServiceAddItemProcedure:           unaryHandler(BillServiceAddItemProcedure, svc.AddItem, opts),
		BillServiceUpdateItemProcedure:        unaryHandler(BillServiceUpdateItemProcedure, svc.UpdateItem, opts),
		BillServiceRemoveItemProcedure:        unaryHandler(BillServiceRemoveItemProcedure, svc.RemoveItem, opts),
		BillServiceResetBillProcedure:         unaryHandler(BillServiceResetBillProcedure, svc.ResetBill, opts),
		BillServiceGetSummaryProcedure:        unaryHandler(BillServiceGetSummaryProcedure, svc.GetSummary, opts),
	}
}

// BillServiceClient is a client for BillService.
type BillServiceClient interface {
	StartBill(context.Context, *connect.Request[StartBillRequest]) (*connect.Response[BillResponse], error)
	GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[BillResponse], error)
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error)
	UpdateSettings(context.Context, *connect.Request[UpdateSettingsRequest]) (*connect.Response[BillResponse], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[ItemResponse], error)
	UpdateItem(context.Context, *connect.Request[UpdateItemRequest]) (*connect.Response[ItemResponse], error)
	RemoveItem(context.Context, *connect.Request[RemoveItemRequest]) (*connect.Response[RemoveItemResponse], error)
	ResetBill(context.Context, *connect.Request[ResetBillRequest]) (*connect.Response[BillResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
}

// NewBillServiceClient constructs a client for the BillService served at baseURL.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	return &billServiceClient{
		startBill:         unaryClient[StartBillRequest, BillResponse](httpClient, baseURL, BillServiceStartBillProcedure, opts),
		getBill:           unaryClient[GetBillRequest, BillResponse](httpClient, baseURL, BillServiceGetBillProcedure, opts),
		addParticipant:    unaryClient[AddParticipantRequest, AddParticipantResponse](httpClient, baseURL, BillServiceAddParticipantProcedure, opts),
		removeParticipant: unaryClient[RemoveParticipantRequest, RemoveParticipantResponse](httpClient, baseURL, BillServiceRemoveParticipantProcedure, opts),
		updateSettings:    unaryClient[UpdateSettingsRequest, BillResponse](httpClient, baseURL, BillServiceUpdateSettingsProcedure, opts),
		addItem:           unaryClient[AddItemRequest, ItemResponse](httpClient, baseURL, BillServiceAddItemProcedure, opts),
		updateItem:        unaryClient[UpdateItemRequest, ItemResponse](httpClient, baseURL, BillServiceUpdateItemProcedure, opts),
		removeItem:        unaryClient[RemoveItemRequest, RemoveItemResponse](httpClient, baseURL, BillServiceRemoveItemProcedure, opts),
		resetBill:         unaryClient[ResetBillRequest, BillResponse](httpClient, baseURL, BillServiceResetBillProcedure, opts),
		getSummary:        unaryClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL, BillServiceGetSummaryProcedure, opts),
	}
}

type billServiceClient struct {
	startBill         *connect.Client[StartBillRequest, BillResponse]
	getBill           *connect.Client[GetBillRequest, BillResponse]
	addParticipant    *connect.Client[AddParticipantRequest, AddParticipantResponse]
	removeParticipant *connect.Client[RemoveParticipantRequest, RemoveParticipantResponse]
	updateSettings    *connect.Client[UpdateSettingsRequest, BillResponse]
	addItem           *connect.Client[AddItemRequest, ItemResponse]
	updateItem        *connect.Client[UpdateItemRequest, ItemResponse]
	removeItem        *connect.Client[RemoveItemRequest, RemoveItemResponse]
	resetBill         *connect.Client[ResetBillRequest, BillResponse]
	getSummary        *connect.Client[GetSummaryRequest, GetSummaryResponse]
}

func (c *billServiceClient) StartBill(ctx context.Context, req *connect.Request[StartBillRequest]) (*connect.Response[BillResponse], error) {
	return c.startBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[BillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *billServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *billServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *billServiceClient) UpdateSettings(ctx context.Context, req *connect.Request[UpdateSettingsRequest]) (*connect.Response[BillResponse], error) {
	return c.updateSettings.CallUnary(ctx, req)
}

func (c *billServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[ItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *billServiceClient) UpdateItem(ctx context.Context, req *connect.Request[UpdateItemRequest]) (*connect.Response[ItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *billServiceClient) RemoveItem(ctx context.Context, req *connect.Request[RemoveItemRequest]) (*connect.Response[RemoveItemResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *billServiceClient) ResetBill(ctx context.Context, req *connect.Request[ResetBillRequest]) (*connect.Response[BillResponse], error) {
	return c.resetBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}
