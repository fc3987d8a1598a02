package api

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// CurvesServiceName is the full gRPC service name.
const CurvesServiceName = "idlebalance.v1.Curves"

// CurvesServer is the gRPC surface. Requests and responses are
// google.protobuf.Struct documents shaped like the HTTP JSON bodies.
type CurvesServer interface {
	ListCharts(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetSeries(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Cost(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var curvesServiceDesc = grpc.ServiceDesc{
	ServiceName: CurvesServiceName,
	HandlerType: (*CurvesServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListCharts", Handler: listChartsHandler},
		{MethodName: "GetSeries", Handler: getSeriesHandler},
		{MethodName: "Cost", Handler: costHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "idlebalance/v1/curves.proto",
}

// RegisterGRPC registers the Curves service and a health service on gs.
func (s *Server) RegisterGRPC(gs *grpc.Server) *health.Server {
	gs.RegisterService(&curvesServiceDesc, s)
	hs := health.NewServer()
	hs.SetServingStatus(CurvesServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)
	return hs
}

func (s *Server) ListCharts(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toStruct(map[string]any{"charts": listCharts()})
}

// GetSeries takes {"chart": id}; an empty id generates every chart.
func (s *Server) GetSeries(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	snap := s.holder.Load()
	id := in.GetFields()["chart"].GetStringValue()
	var err error
	var out any
	if id == "" {
		out, err = s.gen.Generate(ctx, snap.Model, snap.Plan)
	} else {
		out, err = s.gen.GenerateChart(ctx, snap.Model, snap.Plan, id)
	}
	if err != nil {
		return nil, grpcStatus(err)
	}
	return toStruct(out)
}

// Cost takes {"tier": name, "owned": n}.
func (s *Server) Cost(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := in.GetFields()
	name := f["tier"].GetStringValue()
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "missing field tier")
	}
	ownedF := f["owned"].GetNumberValue()
	owned := int(ownedF)
	if float64(owned) != ownedF {
		return nil, status.Errorf(codes.InvalidArgument, "owned must be an integer, got %v", ownedF)
	}
	m := s.holder.Load().Model
	tier, err := m.Tier(name)
	if err != nil {
		return nil, grpcStatus(err)
	}
	c, err := m.Cost(tier, owned)
	if err != nil {
		return nil, grpcStatus(err)
	}
	return toStruct(costResp{Tier: name, Owned: owned, Qty: 1, CostMult: 1, Cost: c})
}

// toStruct round-trips v through its JSON form so the Struct matches the
// HTTP body field for field.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return st, nil
}

func listChartsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CurvesServer).ListCharts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + CurvesServiceName + "/ListCharts"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CurvesServer).ListCharts(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getSeriesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CurvesServer).GetSeries(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + CurvesServiceName + "/GetSeries"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CurvesServer).GetSeries(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func costHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CurvesServer).Cost(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + CurvesServiceName + "/Cost"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CurvesServer).Cost(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
