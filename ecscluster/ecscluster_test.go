// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ecscluster

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	awsrequest "github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ecs"
	"github.com/aws/aws-sdk-go/service/ecs/ecsiface"
	"github.com/grailbio/ecsscale/errors"
)

type mockECSClient struct {
	ecsiface.ECSAPI

	running int64
	missing bool

	// taskPages holds the task ARNs returned by successive ListTasks
	// pages.
	taskPages [][]string

	DescribeServicesInputs []*ecs.DescribeServicesInput
	UpdateServiceInputs    []*ecs.UpdateServiceInput
	ListTasksInputs        []*ecs.ListTasksInput
}

func (m *mockECSClient) DescribeServicesWithContext(ctx aws.Context, input *ecs.DescribeServicesInput, opts ...awsrequest.Option) (*ecs.DescribeServicesOutput, error) {
	m.DescribeServicesInputs = append(m.DescribeServicesInputs, input)
	if m.missing {
		return new(ecs.DescribeServicesOutput), nil
	}
	return &ecs.DescribeServicesOutput{
		Services: []*ecs.Service{{RunningCount: aws.Int64(m.running)}},
	}, nil
}

func (m *mockECSClient) UpdateServiceWithContext(ctx aws.Context, input *ecs.UpdateServiceInput, opts ...awsrequest.Option) (*ecs.UpdateServiceOutput, error) {
	m.UpdateServiceInputs = append(m.UpdateServiceInputs, input)
	return new(ecs.UpdateServiceOutput), nil
}

func (m *mockECSClient) ListTasksWithContext(ctx aws.Context, input *ecs.ListTasksInput, opts ...awsrequest.Option) (*ecs.ListTasksOutput, error) {
	m.ListTasksInputs = append(m.ListTasksInputs, input)
	page := len(m.ListTasksInputs) - 1
	out := new(ecs.ListTasksOutput)
	if page < len(m.taskPages) {
		for _, arn := range m.taskPages[page] {
			out.TaskArns = append(out.TaskArns, aws.String(arn))
		}
	}
	if page+1 < len(m.taskPages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestServiceTasks(t *testing.T) {
	client := &mockECSClient{running: 7}
	cluster := &Cluster{ECS: client, Name: "main"}
	n, err := cluster.ServiceTasks(context.Background(), "frontend")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := n, 7; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := len(client.DescribeServicesInputs), 1; got != want {
		t.Fatalf("got %v calls, want %v", got, want)
	}
	input := client.DescribeServicesInputs[0]
	if got, want := aws.StringValue(input.Cluster), "main"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := aws.StringValue(input.Services[0]), "frontend"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestServiceTasksMissing(t *testing.T) {
	client := &mockECSClient{missing: true}
	cluster := &Cluster{ECS: client, Name: "main"}
	_, err := cluster.ServiceTasks(context.Background(), "frontend")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Match(errors.NotExist, err) {
		t.Errorf("expected NotExist, got %v", err)
	}
}

func TestSetServiceTasks(t *testing.T) {
	client := new(mockECSClient)
	cluster := &Cluster{ECS: client, Name: "main"}
	if err := cluster.SetServiceTasks(context.Background(), "frontend", 12); err != nil {
		t.Fatal(err)
	}
	if got, want := len(client.UpdateServiceInputs), 1; got != want {
		t.Fatalf("got %v calls, want %v", got, want)
	}
	input := client.UpdateServiceInputs[0]
	if got, want := aws.Int64Value(input.DesiredCount), int64(12); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := aws.StringValue(input.Service), "frontend"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTasksPaginated(t *testing.T) {
	client := &mockECSClient{taskPages: [][]string{
		{"task1", "task2", "task3"},
		{"task4", "task5"},
	}}
	cluster := &Cluster{ECS: client, Name: "main"}
	n, err := cluster.Tasks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got, want := n, 5; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := len(client.ListTasksInputs), 2; got != want {
		t.Errorf("got %v calls, want %v", got, want)
	}
	if got, want := aws.StringValue(client.ListTasksInputs[0].DesiredStatus), "RUNNING"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
