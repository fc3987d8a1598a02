package api

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func dialTestServer(t *testing.T) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer()
	newTestServer(t).RegisterGRPC(gs)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func method(name string) string { return "/" + CurvesServiceName + "/" + name }

func TestGRPCListCharts(t *testing.T) {
	conn := dialTestServer(t)
	out := new(structpb.Struct)
	require.NoError(t, conn.Invoke(context.Background(), method("ListCharts"), &emptypb.Empty{}, out))

	charts := out.GetFields()["charts"].GetListValue().GetValues()
	require.Len(t, charts, 6)
	assert.Equal(t, "producer_costs", charts[0].GetStructValue().GetFields()["id"].GetStringValue())
}

func TestGRPCGetSeries(t *testing.T) {
	conn := dialTestServer(t)
	in, err := structpb.NewStruct(map[string]any{"chart": "distillation_bonuses"})
	require.NoError(t, err)
	out := new(structpb.Struct)
	require.NoError(t, conn.Invoke(context.Background(), method("GetSeries"), in, out))

	charts := out.GetFields()["charts"].GetListValue().GetValues()
	require.Len(t, charts, 1)
	series := charts[0].GetStructValue().GetFields()["series"].GetListValue().GetValues()
	require.Len(t, series, 1)
	table := series[0].GetStructValue().GetFields()["table"].GetListValue().GetValues()
	require.Len(t, table, 6)
	last := table[5].GetStructValue().GetFields()["values"].GetStructValue().GetFields()
	assert.Equal(t, 2.0, last["All Prod"].GetNumberValue())
}

func TestGRPCStatusCodes(t *testing.T) {
	conn := dialTestServer(t)
	tests := []struct {
		name   string
		method string
		in     map[string]any
		code   codes.Code
	}{
		{"unknown chart", "GetSeries", map[string]any{"chart": "nope"}, codes.NotFound},
		{"unknown tier", "Cost", map[string]any{"tier": "Dronee", "owned": 1}, codes.NotFound},
		{"negative owned", "Cost", map[string]any{"tier": "Drone", "owned": -1}, codes.InvalidArgument},
		{"fractional owned", "Cost", map[string]any{"tier": "Drone", "owned": 1.5}, codes.InvalidArgument},
		{"missing tier", "Cost", map[string]any{}, codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := structpb.NewStruct(tt.in)
			require.NoError(t, err)
			err = conn.Invoke(context.Background(), method(tt.method), in, new(structpb.Struct))
			require.Error(t, err)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestGRPCCost(t *testing.T) {
	conn := dialTestServer(t)
	in, err := structpb.NewStruct(map[string]any{"tier": "Drone", "owned": 0})
	require.NoError(t, err)
	out := new(structpb.Struct)
	require.NoError(t, conn.Invoke(context.Background(), method("Cost"), in, out))
	assert.Equal(t, 1100.0, out.GetFields()["cost"].GetNumberValue())
}

func TestGRPCHealth(t *testing.T) {
	conn := dialTestServer(t)
	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: CurvesServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
