package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "pokechain.api.v1alpha1.PokechainService"

// PokechainServiceServer is the server API for the pokechain service
type PokechainServiceServer interface {
	GetCreature(context.Context, *GetCreatureRequest) (*GetCreatureResponse, error)
	ListCreatures(context.Context, *ListCreaturesRequest) (*ListCreaturesResponse, error)
	ClaimStarter(context.Context, *ClaimStarterRequest) (*ClaimStarterResponse, error)
	HealCreature(context.Context, *HealCreatureRequest) (*HealCreatureResponse, error)

	StartEncounter(context.Context, *StartEncounterRequest) (*StartEncounterResponse, error)
	GetEncounter(context.Context, *GetEncounterRequest) (*GetEncounterResponse, error)
	ExecuteTurn(context.Context, *ExecuteTurnRequest) (*ExecuteTurnResponse, error)
	Flee(context.Context, *FleeRequest) (*FleeResponse, error)
	AttemptCapture(context.Context, *AttemptCaptureRequest) (*AttemptCaptureResponse, error)

	Breed(context.Context, *BreedRequest) (*BreedResponse, error)
	ListEggs(context.Context, *ListEggsRequest) (*ListEggsResponse, error)
	AddSteps(context.Context, *AddStepsRequest) (*AddStepsResponse, error)
	HatchEgg(context.Context, *HatchEggRequest) (*HatchEggResponse, error)

	CreateListing(context.Context, *CreateListingRequest) (*CreateListingResponse, error)
	PurchaseListing(context.Context, *PurchaseListingRequest) (*PurchaseListingResponse, error)
	CancelListing(context.Context, *CancelListingRequest) (*CancelListingResponse, error)
	GetListing(context.Context, *GetListingRequest) (*GetListingResponse, error)
	SearchListings(context.Context, *SearchListingsRequest) (*SearchListingsResponse, error)
	GetSalesHistory(context.Context, *GetSalesHistoryRequest) (*GetSalesHistoryResponse, error)

	ListSpecies(context.Context, *ListSpeciesRequest) (*ListSpeciesResponse, error)
	ListMoves(context.Context, *ListMovesRequest) (*ListMovesResponse, error)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// unary adapts one server method to a grpc.MethodDesc
func unary[Req, Resp any](
	name string,
	call func(PokechainServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PokechainServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PokechainServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the pokechain service for grpc.Server
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PokechainServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetCreature", PokechainServiceServer.GetCreature),
		unary("ListCreatures", PokechainServiceServer.ListCreatures),
		unary("ClaimStarter", PokechainServiceServer.ClaimStarter),
		unary("HealCreature", PokechainServiceServer.HealCreature),
		unary("StartEncounter", PokechainServiceServer.StartEncounter),
		unary("GetEncounter", PokechainServiceServer.GetEncounter),
		unary("ExecuteTurn", PokechainServiceServer.ExecuteTurn),
		unary("Flee", PokechainServiceServer.Flee),
		unary("AttemptCapture", PokechainServiceServer.AttemptCapture),
		unary("Breed", PokechainServiceServer.Breed),
		unary("ListEggs", PokechainServiceServer.ListEggs),
		unary("AddSteps", PokechainServiceServer.AddSteps),
		unary("HatchEgg", PokechainServiceServer.HatchEgg),
		unary("CreateListing", PokechainServiceServer.CreateListing),
		unary("PurchaseListing", PokechainServiceServer.PurchaseListing),
		unary("CancelListing", PokechainServiceServer.CancelListing),
		unary("GetListing", PokechainServiceServer.GetListing),
		unary("SearchListings", PokechainServiceServer.SearchListings),
		unary("GetSalesHistory", PokechainServiceServer.GetSalesHistory),
		unary("ListSpecies", PokechainServiceServer.ListSpecies),
		unary("ListMoves", PokechainServiceServer.ListMoves),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pokechain/api/v1alpha1/pokechain.proto",
}

// RegisterPokechainServiceServer registers srv with s
func RegisterPokechainServiceServer(s grpc.ServiceRegistrar, srv PokechainServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the pokechain service over the JSON codec
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCreature(ctx context.Context, in *GetCreatureRequest, opts ...grpc.CallOption) (*GetCreatureResponse, error) {
	return invoke[GetCreatureResponse](ctx, c, "GetCreature", in, opts)
}

func (c *Client) ListCreatures(ctx context.Context, in *ListCreaturesRequest, opts ...grpc.CallOption) (*ListCreaturesResponse, error) {
	return invoke[ListCreaturesResponse](ctx, c, "ListCreatures", in, opts)
}

func (c *Client) ClaimStarter(ctx context.Context, in *ClaimStarterRequest, opts ...grpc.CallOption) (*ClaimStarterResponse, error) {
	return invoke[ClaimStarterResponse](ctx, c, "ClaimStarter", in, opts)
}

func (c *Client) HealCreature(ctx context.Context, in *HealCreatureRequest, opts ...grpc.CallOption) (*HealCreatureResponse, error) {
	return invoke[HealCreatureResponse](ctx, c, "HealCreature", in, opts)
}

func (c *Client) StartEncounter(ctx context.Context, in *StartEncounterRequest, opts ...grpc.CallOption) (*StartEncounterResponse, error) {
	return invoke[StartEncounterResponse](ctx, c, "StartEncounter", in, opts)
}

func (c *Client) GetEncounter(ctx context.Context, in *GetEncounterRequest, opts ...grpc.CallOption) (*GetEncounterResponse, error) {
	return invoke[GetEncounterResponse](ctx, c, "GetEncounter", in, opts)
}

func (c *Client) ExecuteTurn(ctx context.Context, in *ExecuteTurnRequest, opts ...grpc.CallOption) (*ExecuteTurnResponse, error) {
	return invoke[ExecuteTurnResponse](ctx, c, "ExecuteTurn", in, opts)
}

func (c *Client) Flee(ctx context.Context, in *FleeRequest, opts ...grpc.CallOption) (*FleeResponse, error) {
	return invoke[FleeResponse](ctx, c, "Flee", in, opts)
}

func (c *Client) AttemptCapture(ctx context.Context, in *AttemptCaptureRequest, opts ...grpc.CallOption) (*AttemptCaptureResponse, error) {
	return invoke[AttemptCaptureResponse](ctx, c, "AttemptCapture", in, opts)
}

func (c *Client) Breed(ctx context.Context, in *BreedRequest, opts ...grpc.CallOption) (*BreedResponse, error) {
	return invoke[BreedResponse](ctx, c, "Breed", in, opts)
}

func (c *Client) ListEggs(ctx context.Context, in *ListEggsRequest, opts ...grpc.CallOption) (*ListEggsResponse, error) {
	return invoke[ListEggsResponse](ctx, c, "ListEggs", in, opts)
}

func (c *Client) AddSteps(ctx context.Context, in *AddStepsRequest, opts ...grpc.CallOption) (*AddStepsResponse, error) {
	return invoke[AddStepsResponse](ctx, c, "AddSteps", in, opts)
}

func (c *Client) HatchEgg(ctx context.Context, in *HatchEggRequest, opts ...grpc.CallOption) (*HatchEggResponse, error) {
	return invoke[HatchEggResponse](ctx, c, "HatchEgg", in, opts)
}

func (c *Client) CreateListing(ctx context.Context, in *CreateListingRequest, opts ...grpc.CallOption) (*CreateListingResponse, error) {
	return invoke[CreateListingResponse](ctx, c, "CreateListing", in, opts)
}

func (c *Client) PurchaseListing(ctx context.Context, in *PurchaseListingRequest, opts ...grpc.CallOption) (*PurchaseListingResponse, error) {
	return invoke[PurchaseListingResponse](ctx, c, "PurchaseListing", in, opts)
}

func (c *Client) CancelListing(ctx context.Context, in *CancelListingRequest, opts ...grpc.CallOption) (*CancelListingResponse, error) {
	return invoke[CancelListingResponse](ctx, c, "CancelListing", in, opts)
}

func (c *Client) GetListing(ctx context.Context, in *GetListingRequest, opts ...grpc.CallOption) (*GetListingResponse, error) {
	return invoke[GetListingResponse](ctx, c, "GetListing", in, opts)
}

func (c *Client) SearchListings(ctx context.Context, in *SearchListingsRequest, opts ...grpc.CallOption) (*SearchListingsResponse, error) {
	return invoke[SearchListingsResponse](ctx, c, "SearchListings", in, opts)
}

func (c *Client) GetSalesHistory(ctx context.Context, in *GetSalesHistoryRequest, opts ...grpc.CallOption) (*GetSalesHistoryResponse, error) {
	return invoke[GetSalesHistoryResponse](ctx, c, "GetSalesHistory", in, opts)
}

func (c *Client) ListSpecies(ctx context.Context, in *ListSpeciesRequest, opts ...grpc.CallOption) (*ListSpeciesResponse, error) {
	return invoke[ListSpeciesResponse](ctx, c, "ListSpecies", in, opts)
}

func (c *Client) ListMoves(ctx context.Context, in *ListMovesRequest, opts ...grpc.CallOption) (*ListMovesResponse, error) {
	return invoke[ListMovesResponse](ctx, c, "ListMoves", in, opts)
}
